package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fileledger/internal/common"
	"github.com/dmitrijs2005/fileledger/internal/logging"
	"github.com/dmitrijs2005/fileledger/internal/server/auth"
	"github.com/dmitrijs2005/fileledger/internal/server/clock"
	"github.com/dmitrijs2005/fileledger/internal/server/config"
	"github.com/dmitrijs2005/fileledger/internal/server/models"
	"github.com/dmitrijs2005/fileledger/internal/server/repositories/kv"
)

// FileSyncService records file uploads, share permissions and downloads and
// keeps the per-user counts and SyncStats consistent with them.
//
// By default share, revoke and download only check that the caller is who it
// claims to be, not that it owns the file or holds a permission. Setting
// EnforceOwnership in the config adds those checks.
type FileSyncService struct {
	host             kv.Host
	auth             auth.Authenticator
	clock            clock.Clock
	logger           logging.Logger
	minTTL           time.Duration
	targetTTL        time.Duration
	enforceOwnership bool
}

func NewFileSyncService(host kv.Host, a auth.Authenticator, c clock.Clock, cfg *config.Config, logger logging.Logger) *FileSyncService {
	return &FileSyncService{
		host:             host,
		auth:             a,
		clock:            c,
		logger:           logger.With("module", "filesync"),
		minTTL:           cfg.RetentionMinTTL,
		targetTTL:        cfg.RetentionTargetTTL,
		enforceOwnership: cfg.EnforceOwnership,
	}
}

// UploadFile records a new file owned by owner and returns its id.
func (s *FileSyncService) UploadFile(ctx context.Context, owner models.Identity, name, hash string, size uint64, isPublic bool) (uint64, error) {
	var rec models.FileRecord
	err := s.host.Invoke(ctx, func(ctx context.Context, st kv.Store) error {
		if err := s.auth.RequireIdentity(ctx, owner); err != nil {
			return err
		}

		id, err := nextID(ctx, st, fileCounter)
		if err != nil {
			return err
		}
		rec = models.FileRecord{
			FileID:     id,
			Owner:      owner,
			FileName:   name,
			FileHash:   hash,
			FileSize:   size,
			UploadTime: s.clock.Now(),
			IsPublic:   isPublic,
		}

		count, err := loadUserCount(ctx, st, owner)
		if err != nil {
			return err
		}
		stats, err := loadStats(ctx, st)
		if err != nil {
			return err
		}
		if count == 0 {
			stats.ActiveUsers++
		}
		stats.TotalFiles++

		if err := st.Set(ctx, fileKey(id), rec); err != nil {
			return err
		}
		if err := st.Set(ctx, userCountKey(owner), count+1); err != nil {
			return err
		}
		if err := st.Set(ctx, statsKey, stats); err != nil {
			return err
		}
		return st.ExtendRetention(ctx, s.minTTL, s.targetTTL)
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info(ctx, "file uploaded", "file_id", rec.FileID, "owner", owner, "size", size, "public", isPublic)
	return rec.FileID, nil
}

// ShareFile grants sharedWith download rights on fileID and returns the new
// permission id. expiryTime 0 means the permission never expires.
func (s *FileSyncService) ShareFile(ctx context.Context, owner models.Identity, fileID uint64, sharedWith models.Identity, expiryTime uint64) (uint64, error) {
	var perm models.SharePermission
	err := s.host.Invoke(ctx, func(ctx context.Context, st kv.Store) error {
		if err := s.auth.RequireIdentity(ctx, owner); err != nil {
			return err
		}

		file, err := loadFile(ctx, st, fileID)
		if err != nil {
			return err
		}
		if !file.Exists() {
			return fmt.Errorf("file %d: %w", fileID, common.ErrorNotFound)
		}
		if s.enforceOwnership && file.Owner != owner {
			return fmt.Errorf("file %d is not owned by %q: %w", fileID, owner, common.ErrorUnauthorized)
		}

		id, err := nextID(ctx, st, permissionCounter)
		if err != nil {
			return err
		}
		perm = models.SharePermission{
			PermissionID: id,
			FileID:       fileID,
			Owner:        owner,
			SharedWith:   sharedWith,
			CanDownload:  true,
			ExpiryTime:   expiryTime,
			GrantedTime:  s.clock.Now(),
		}

		stats, err := loadStats(ctx, st)
		if err != nil {
			return err
		}
		stats.TotalShares++

		if err := st.Set(ctx, shareKey(id), perm); err != nil {
			return err
		}
		if err := st.Set(ctx, shareIndexKey(fileID, sharedWith), id); err != nil {
			return err
		}
		if err := st.Set(ctx, statsKey, stats); err != nil {
			return err
		}
		return st.ExtendRetention(ctx, s.minTTL, s.targetTTL)
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info(ctx, "file shared", "file_id", fileID, "permission_id", perm.PermissionID,
		"owner", owner, "shared_with", sharedWith, "expiry_time", expiryTime)
	return perm.PermissionID, nil
}

// RecordDownload counts one download of fileID by downloader.
func (s *FileSyncService) RecordDownload(ctx context.Context, fileID uint64, downloader models.Identity) error {
	var count uint64
	err := s.host.Invoke(ctx, func(ctx context.Context, st kv.Store) error {
		if err := s.auth.RequireIdentity(ctx, downloader); err != nil {
			return err
		}

		file, err := loadFile(ctx, st, fileID)
		if err != nil {
			return err
		}
		if !file.Exists() {
			return fmt.Errorf("file %d: %w", fileID, common.ErrorNotFound)
		}
		if s.enforceOwnership {
			if err := s.checkDownloadAllowed(ctx, st, file, downloader); err != nil {
				return err
			}
		}

		stats, err := loadStats(ctx, st)
		if err != nil {
			return err
		}
		file.DownloadCount++
		stats.TotalDownloads++
		count = file.DownloadCount

		if err := st.Set(ctx, fileKey(fileID), file); err != nil {
			return err
		}
		if err := st.Set(ctx, statsKey, stats); err != nil {
			return err
		}
		return st.ExtendRetention(ctx, s.minTTL, s.targetTTL)
	})
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "download recorded", "file_id", fileID, "downloader", downloader, "download_count", count)
	return nil
}

// checkDownloadAllowed passes public files, the owner, and holders of an
// active permission on the file. Only the latest grant per (file, recipient)
// is consulted: revoking it refuses the download even when an earlier grant
// to the same recipient is still active.
func (s *FileSyncService) checkDownloadAllowed(ctx context.Context, st kv.Store, file models.FileRecord, downloader models.Identity) error {
	if file.IsPublic || file.Owner == downloader {
		return nil
	}
	var permID uint64
	if _, err := st.Get(ctx, shareIndexKey(file.FileID, downloader), &permID); err != nil {
		return err
	}
	perm, err := loadShare(ctx, st, permID)
	if err != nil {
		return err
	}
	if !perm.Active(s.clock.Now()) {
		return fmt.Errorf("%q holds no active permission on file %d: %w", downloader, file.FileID, common.ErrorUnauthorized)
	}
	return nil
}

// RevokeShare turns permissionID off. The permission record is kept.
func (s *FileSyncService) RevokeShare(ctx context.Context, owner models.Identity, permissionID uint64) error {
	err := s.host.Invoke(ctx, func(ctx context.Context, st kv.Store) error {
		if err := s.auth.RequireIdentity(ctx, owner); err != nil {
			return err
		}

		perm, err := loadShare(ctx, st, permissionID)
		if err != nil {
			return err
		}
		if !perm.Exists() {
			return fmt.Errorf("permission %d: %w", permissionID, common.ErrorNotFound)
		}
		if s.enforceOwnership && perm.Owner != owner {
			return fmt.Errorf("permission %d was not granted by %q: %w", permissionID, owner, common.ErrorUnauthorized)
		}

		stats, err := loadStats(ctx, st)
		if err != nil {
			return err
		}
		perm.CanDownload = false
		if stats.TotalShares > 0 {
			stats.TotalShares--
		}

		if err := st.Set(ctx, shareKey(permissionID), perm); err != nil {
			return err
		}
		if err := st.Set(ctx, statsKey, stats); err != nil {
			return err
		}
		return st.ExtendRetention(ctx, s.minTTL, s.targetTTL)
	})
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "share revoked", "permission_id", permissionID, "owner", owner)
	return nil
}

// GetFile returns the file record, or the zero record (FileID 0) if absent.
func (s *FileSyncService) GetFile(ctx context.Context, fileID uint64) (models.FileRecord, error) {
	var rec models.FileRecord
	err := s.host.Invoke(ctx, func(ctx context.Context, st kv.Store) error {
		var err error
		rec, err = loadFile(ctx, st, fileID)
		return err
	})
	return rec, err
}

// GetShare returns the permission, or the zero permission (PermissionID 0) if absent.
func (s *FileSyncService) GetShare(ctx context.Context, permissionID uint64) (models.SharePermission, error) {
	var perm models.SharePermission
	err := s.host.Invoke(ctx, func(ctx context.Context, st kv.Store) error {
		var err error
		perm, err = loadShare(ctx, st, permissionID)
		return err
	})
	return perm, err
}

// GetUserFileCount returns how many files owner has uploaded.
func (s *FileSyncService) GetUserFileCount(ctx context.Context, owner models.Identity) (uint64, error) {
	var n uint64
	err := s.host.Invoke(ctx, func(ctx context.Context, st kv.Store) error {
		var err error
		n, err = loadUserCount(ctx, st, owner)
		return err
	})
	return n, err
}

func (s *FileSyncService) GetSyncStats(ctx context.Context) (models.SyncStats, error) {
	var stats models.SyncStats
	err := s.host.Invoke(ctx, func(ctx context.Context, st kv.Store) error {
		var err error
		stats, err = loadStats(ctx, st)
		return err
	})
	return stats, err
}

// GetRetention reports until when the store guarantees availability.
func (s *FileSyncService) GetRetention(ctx context.Context) (time.Time, error) {
	return s.host.Retention(ctx)
}

package grpc

import (
	"github.com/dmitrijs2005/fileledger/internal/api"
	"github.com/dmitrijs2005/fileledger/internal/server/models"
)

func fileToAPI(f models.FileRecord) api.FileRecord {
	return api.FileRecord{
		FileID:        f.FileID,
		Owner:         string(f.Owner),
		FileName:      f.FileName,
		FileHash:      f.FileHash,
		FileSize:      f.FileSize,
		UploadTime:    f.UploadTime,
		IsPublic:      f.IsPublic,
		DownloadCount: f.DownloadCount,
	}
}

func shareToAPI(p models.SharePermission) api.SharePermission {
	return api.SharePermission{
		PermissionID: p.PermissionID,
		FileID:       p.FileID,
		Owner:        string(p.Owner),
		SharedWith:   string(p.SharedWith),
		CanDownload:  p.CanDownload,
		ExpiryTime:   p.ExpiryTime,
		GrantedTime:  p.GrantedTime,
	}
}

func statsToAPI(s models.SyncStats) api.SyncStats {
	return api.SyncStats{
		TotalFiles:     s.TotalFiles,
		TotalShares:    s.TotalShares,
		TotalDownloads: s.TotalDownloads,
		ActiveUsers:    s.ActiveUsers,
	}
}

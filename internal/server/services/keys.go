package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/fileledger/internal/server/models"
	"github.com/dmitrijs2005/fileledger/internal/server/repositories/kv"
)

// Store namespaces.
const (
	nsReward     = "RWRD"
	nsFile       = "FILE"
	nsShare      = "SHARE"
	nsUserCount  = "UCNT"
	nsStats      = "STATS"
	nsCounter    = "CTR"
	nsShareIndex = "SHIDX"
)

// Counter names under nsCounter.
const (
	fileCounter       = "file"
	permissionCounter = "perm"
)

var statsKey = kv.Key{Namespace: nsStats, Discriminant: "global"}

func rewardKey(user models.UserID) kv.Key {
	return kv.Key{Namespace: nsReward, Discriminant: string(user)}
}

func fileKey(id uint64) kv.Key {
	return kv.Key{Namespace: nsFile, Discriminant: strconv.FormatUint(id, 10)}
}

func shareKey(id uint64) kv.Key {
	return kv.Key{Namespace: nsShare, Discriminant: strconv.FormatUint(id, 10)}
}

func userCountKey(owner models.Identity) kv.Key {
	return kv.Key{Namespace: nsUserCount, Discriminant: string(owner)}
}

// shareIndexKey points at the latest permission granted on fileID to with.
func shareIndexKey(fileID uint64, with models.Identity) kv.Key {
	return kv.Key{Namespace: nsShareIndex, Discriminant: strconv.FormatUint(fileID, 10) + "/" + string(with)}
}

func counterKey(name string) kv.Key {
	return kv.Key{Namespace: nsCounter, Discriminant: name}
}

// nextID allocates the next value of the named counter. The increment is
// staged in s, so it commits together with the record it backs. Counters
// start at 1; 0 is never handed out.
func nextID(ctx context.Context, s kv.Store, name string) (uint64, error) {
	var current uint64
	if _, err := s.Get(ctx, counterKey(name), &current); err != nil {
		return 0, err
	}
	next := current + 1
	if next == 0 {
		return 0, fmt.Errorf("counter %s exhausted", name)
	}
	if err := s.Set(ctx, counterKey(name), next); err != nil {
		return 0, err
	}
	return next, nil
}

func loadStats(ctx context.Context, s kv.Store) (models.SyncStats, error) {
	var stats models.SyncStats
	_, err := s.Get(ctx, statsKey, &stats)
	return stats, err
}

// loadFile returns the zero FileRecord (FileID 0) when id is unknown.
func loadFile(ctx context.Context, s kv.Store, id uint64) (models.FileRecord, error) {
	var rec models.FileRecord
	if id == 0 {
		return rec, nil
	}
	_, err := s.Get(ctx, fileKey(id), &rec)
	return rec, err
}

// loadShare returns the zero SharePermission (PermissionID 0) when id is unknown.
func loadShare(ctx context.Context, s kv.Store, id uint64) (models.SharePermission, error) {
	var perm models.SharePermission
	if id == 0 {
		return perm, nil
	}
	_, err := s.Get(ctx, shareKey(id), &perm)
	return perm, err
}

func loadUserCount(ctx context.Context, s kv.Store, owner models.Identity) (uint64, error) {
	var n uint64
	_, err := s.Get(ctx, userCountKey(owner), &n)
	return n, err
}

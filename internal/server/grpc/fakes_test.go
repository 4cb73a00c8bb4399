package grpc

import (
	"context"

	"github.com/dmitrijs2005/fileledger/internal/logging"
	"github.com/dmitrijs2005/fileledger/internal/server/models"
)

type fakeRewards struct {
	gotUser   models.UserID
	gotAmount models.Points
	balance   models.Points
	err       error
}

func (f *fakeRewards) Mint(ctx context.Context, user models.UserID, amount models.Points) error {
	f.gotUser, f.gotAmount = user, amount
	return f.err
}

func (f *fakeRewards) Redeem(ctx context.Context, user models.UserID, amount models.Points) error {
	f.gotUser, f.gotAmount = user, amount
	return f.err
}

func (f *fakeRewards) GetBalance(ctx context.Context, user models.UserID) (models.Points, error) {
	f.gotUser = user
	return f.balance, f.err
}

func (f *fakeRewards) ResetBalance(ctx context.Context, user models.UserID) error {
	f.gotUser = user
	return f.err
}

type fakeFiles struct {
	id    uint64
	file  models.FileRecord
	perm  models.SharePermission
	count uint64
	stats models.SyncStats
	err   error
}

func (f *fakeFiles) UploadFile(context.Context, models.Identity, string, string, uint64, bool) (uint64, error) {
	return f.id, f.err
}

func (f *fakeFiles) ShareFile(context.Context, models.Identity, uint64, models.Identity, uint64) (uint64, error) {
	return f.id, f.err
}

func (f *fakeFiles) RecordDownload(context.Context, uint64, models.Identity) error { return f.err }

func (f *fakeFiles) RevokeShare(context.Context, models.Identity, uint64) error { return f.err }

func (f *fakeFiles) GetFile(context.Context, uint64) (models.FileRecord, error) { return f.file, f.err }

func (f *fakeFiles) GetShare(context.Context, uint64) (models.SharePermission, error) {
	return f.perm, f.err
}

func (f *fakeFiles) GetUserFileCount(context.Context, models.Identity) (uint64, error) {
	return f.count, f.err
}

func (f *fakeFiles) GetSyncStats(context.Context) (models.SyncStats, error) { return f.stats, f.err }

type fakeBlobs struct {
	key string
	url string
	err error
}

func (f *fakeBlobs) PresignUpload(context.Context, string) (string, string, error) {
	return f.key, f.url, f.err
}

func (f *fakeBlobs) PresignDownload(context.Context, uint64) (string, error) { return f.url, f.err }

// recordingLogger keeps the messages it was given.
type recordingLogger struct {
	logging.Nop
	infos  *[]string
	errors *[]string
}

func newRecordingLogger() recordingLogger {
	return recordingLogger{infos: &[]string{}, errors: &[]string{}}
}

func (r recordingLogger) Info(_ context.Context, msg string, _ ...any) {
	*r.infos = append(*r.infos, msg)
}

func (r recordingLogger) Error(_ context.Context, msg string, _ ...any) {
	*r.errors = append(*r.errors, msg)
}

func (r recordingLogger) With(...any) logging.Logger { return r }

func newServer(r rewardSvc, f fileSvc, b blobSvc) *GRPCServer {
	return &GRPCServer{
		address:   "127.0.0.1:0",
		rewards:   r,
		files:     f,
		blobs:     b,
		logger:    logging.Nop{},
		jwtSecret: []byte("k"),
	}
}

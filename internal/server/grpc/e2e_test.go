package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/fileledger/internal/api"
	"github.com/dmitrijs2005/fileledger/internal/common"
	"github.com/dmitrijs2005/fileledger/internal/logging"
	"github.com/dmitrijs2005/fileledger/internal/server/auth"
	"github.com/dmitrijs2005/fileledger/internal/server/clock"
	"github.com/dmitrijs2005/fileledger/internal/server/config"
	"github.com/dmitrijs2005/fileledger/internal/server/repositories/kv"
	"github.com/dmitrijs2005/fileledger/internal/server/services"
	"github.com/dmitrijs2005/fileledger/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

const e2eSecret = "e2e-secret"

func startLedger(t *testing.T) *api.LedgerServiceClient {
	t.Helper()

	host := kv.NewMemoryHost()
	cfg := &config.Config{RetentionMinTTL: time.Hour, RetentionTargetTTL: 2 * time.Hour}
	rewards := services.NewRewardService(host, logging.Nop{})
	files := services.NewFileSyncService(host, auth.ContextAuthenticator{}, clock.NewManual(100), cfg, logging.Nop{})

	srv := NewGRPCServer("bufnet", logging.Nop{}, rewards, files, &fakeBlobs{}, e2eSecret, time.Hour)

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		<-done
	})

	return api.NewLedgerServiceClient(conn)
}

func asCaller(t *testing.T, identity string) context.Context {
	t.Helper()
	tok, err := token.GenerateToken(identity, []byte(e2eSecret), time.Minute)
	require.NoError(t, err)
	return metadata.AppendToOutgoingContext(context.Background(), common.AccessTokenHeaderName, tok)
}

func TestE2E_Rewards(t *testing.T) {
	c := startLedger(t)
	ctx := context.Background()

	_, err := c.Mint(ctx, &api.MintRequest{User: "u1", Amount: "100000000000000000000000"})
	require.NoError(t, err)
	_, err = c.Redeem(ctx, &api.RedeemRequest{User: "u1", Amount: "1"})
	require.NoError(t, err)

	bal, err := c.GetBalance(ctx, &api.GetBalanceRequest{User: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "99999999999999999999999", bal.Points)

	_, err = c.Redeem(ctx, &api.RedeemRequest{User: "u1", Amount: "100000000000000000000000"})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	_, err = c.Redeem(ctx, &api.RedeemRequest{User: "ghost", Amount: "1"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = c.Mint(ctx, &api.MintRequest{User: "u1", Amount: "0"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = c.ResetBalance(ctx, &api.ResetBalanceRequest{User: "u1"})
	require.NoError(t, err)
	bal, err = c.GetBalance(ctx, &api.GetBalanceRequest{User: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "0", bal.Points)
}

func TestE2E_FileSync(t *testing.T) {
	c := startLedger(t)

	_, err := c.UploadFile(context.Background(), &api.UploadFileRequest{Owner: "alice", FileName: "a", FileHash: "h"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = c.UploadFile(asCaller(t, "bob"), &api.UploadFileRequest{Owner: "alice", FileName: "a", FileHash: "h"})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	up, err := c.UploadFile(asCaller(t, "alice"), &api.UploadFileRequest{Owner: "alice", FileName: "a.txt", FileHash: "h", FileSize: 3})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), up.FileID)

	sh, err := c.ShareFile(asCaller(t, "alice"), &api.ShareFileRequest{Owner: "alice", FileID: up.FileID, SharedWith: "bob"})
	require.NoError(t, err)

	_, err = c.RecordDownload(asCaller(t, "bob"), &api.RecordDownloadRequest{FileID: up.FileID, Downloader: "bob"})
	require.NoError(t, err)

	_, err = c.RevokeShare(asCaller(t, "alice"), &api.RevokeShareRequest{Owner: "alice", PermissionID: sh.PermissionID})
	require.NoError(t, err)

	file, err := c.GetFile(context.Background(), &api.GetFileRequest{FileID: up.FileID})
	require.NoError(t, err)
	assert.Equal(t, api.FileRecord{FileID: 1, Owner: "alice", FileName: "a.txt", FileHash: "h", FileSize: 3, UploadTime: 100, DownloadCount: 1}, file.File)

	perm, err := c.GetShare(context.Background(), &api.GetShareRequest{PermissionID: sh.PermissionID})
	require.NoError(t, err)
	assert.False(t, perm.Permission.CanDownload)

	missing, err := c.GetFile(context.Background(), &api.GetFileRequest{FileID: 99})
	require.NoError(t, err)
	assert.Zero(t, missing.File.FileID)

	stats, err := c.GetSyncStats(context.Background(), &api.GetSyncStatsRequest{})
	require.NoError(t, err)
	assert.Equal(t, api.SyncStats{TotalFiles: 1, TotalShares: 0, TotalDownloads: 1, ActiveUsers: 1}, stats.Stats)

	cnt, err := c.GetUserFileCount(context.Background(), &api.GetUserFileCountRequest{Owner: "alice"})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), cnt.Count)

	pong, err := c.Ping(context.Background(), &api.PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OK", pong.Status)
}

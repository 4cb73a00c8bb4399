package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/fileledger/internal/api"
	"github.com/dmitrijs2005/fileledger/internal/client/config"
	"github.com/dmitrijs2005/fileledger/internal/common"
	"github.com/dmitrijs2005/fileledger/internal/cryptox"
	"github.com/dmitrijs2005/fileledger/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLedger records calls; unset behavior succeeds with zero values.
type fakeLedger struct {
	calls    []string
	balance  string
	file     api.FileRecord
	perm     api.SharePermission
	stats    api.SyncStats
	count    uint64
	putURL   string
	getURL   string
	upload   *api.UploadFileRequest
	share    *api.ShareFileRequest
	revokeBy string
	download string
	err      error
	closed   bool
}

func (f *fakeLedger) call(name string) error {
	f.calls = append(f.calls, name)
	return f.err
}

func (f *fakeLedger) Ping(context.Context) error { return f.call("Ping") }

func (f *fakeLedger) Mint(context.Context, string, string) error   { return f.call("Mint") }
func (f *fakeLedger) Redeem(context.Context, string, string) error { return f.call("Redeem") }

func (f *fakeLedger) GetBalance(context.Context, string) (string, error) {
	return f.balance, f.call("GetBalance")
}

func (f *fakeLedger) ResetBalance(context.Context, string) error { return f.call("ResetBalance") }

func (f *fakeLedger) UploadFile(_ context.Context, req *api.UploadFileRequest) (uint64, error) {
	f.upload = req
	return 5, f.call("UploadFile")
}

func (f *fakeLedger) ShareFile(_ context.Context, req *api.ShareFileRequest) (uint64, error) {
	f.share = req
	return 9, f.call("ShareFile")
}

func (f *fakeLedger) RecordDownload(_ context.Context, _ uint64, who string) error {
	f.download = who
	return f.call("RecordDownload")
}

func (f *fakeLedger) RevokeShare(_ context.Context, owner string, _ uint64) error {
	f.revokeBy = owner
	return f.call("RevokeShare")
}

func (f *fakeLedger) GetFile(context.Context, uint64) (api.FileRecord, error) {
	return f.file, f.call("GetFile")
}

func (f *fakeLedger) GetShare(context.Context, uint64) (api.SharePermission, error) {
	return f.perm, f.call("GetShare")
}

func (f *fakeLedger) GetUserFileCount(context.Context, string) (uint64, error) {
	return f.count, f.call("GetUserFileCount")
}

func (f *fakeLedger) GetSyncStats(context.Context) (api.SyncStats, error) {
	return f.stats, f.call("GetSyncStats")
}

func (f *fakeLedger) PresignUpload(context.Context, string) (string, string, error) {
	return "blobs/x", f.putURL, f.call("PresignUpload")
}

func (f *fakeLedger) PresignDownload(context.Context, uint64) (string, error) {
	return f.getURL, f.call("PresignDownload")
}

func (f *fakeLedger) Close() error {
	f.closed = true
	return nil
}

func newTestApp(t *testing.T, f *fakeLedger, token string) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	cfg := &config.Config{AccessToken: token, TokenValidityDuration: time.Minute}
	return &App{
		config:      cfg,
		client:      f,
		http:        http.DefaultClient,
		out:         &out,
		reader:      bufio.NewReader(strings.NewReader("")),
		downloadDir: "download",
	}, &out
}

func tokenFor(t *testing.T, identity string) string {
	t.Helper()
	tok, err := token.GenerateToken(identity, []byte("k"), time.Hour)
	require.NoError(t, err)
	return tok
}

func TestRun_UsageAndUnknown(t *testing.T) {
	f := &fakeLedger{}
	app, out := newTestApp(t, f, "")

	assert.ErrorIs(t, app.Run(context.Background(), nil), ErrUsage)
	assert.Contains(t, out.String(), "Usage: ledgerctl")
	assert.True(t, f.closed)

	app, _ = newTestApp(t, &fakeLedger{}, "")
	assert.ErrorIs(t, app.Run(context.Background(), []string{"frobnicate"}), ErrUsage)

	app, _ = newTestApp(t, &fakeLedger{}, "")
	assert.NoError(t, app.Run(context.Background(), []string{"help"}))
}

func TestRewardsCommands(t *testing.T) {
	f := &fakeLedger{balance: "150"}
	app, out := newTestApp(t, f, "")

	require.NoError(t, app.Run(context.Background(), []string{"mint", "u1", "150"}))
	assert.Equal(t, []string{"Mint", "GetBalance"}, f.calls)
	assert.Equal(t, "u1: 150 points\n", out.String())

	for _, args := range [][]string{{"redeem", "u1", "1"}, {"balance", "u1"}, {"reset", "u1"}} {
		app, _ := newTestApp(t, &fakeLedger{}, "")
		assert.NoError(t, app.Run(context.Background(), args), args)
	}

	for _, args := range [][]string{{"mint", "u1"}, {"redeem"}, {"balance"}, {"reset", "a", "b"}} {
		app, _ := newTestApp(t, &fakeLedger{}, "")
		assert.ErrorIs(t, app.Run(context.Background(), args), ErrUsage, args)
	}
}

func TestRewardsCommands_ServerError(t *testing.T) {
	f := &fakeLedger{err: common.ErrorInsufficientBalance}
	app, out := newTestApp(t, f, "")

	err := app.Run(context.Background(), []string{"redeem", "u1", "10"})
	assert.ErrorIs(t, err, common.ErrorInsufficientBalance)
	assert.Empty(t, out.String())
}

func TestToken_WithSecretFlag(t *testing.T) {
	app, out := newTestApp(t, &fakeLedger{}, "")
	app.config.SecretKey = "s3cret"

	require.NoError(t, app.Run(context.Background(), []string{"token", "alice"}))

	id, err := token.GetIdentityFromToken(strings.TrimSpace(out.String()), []byte("s3cret"))
	require.NoError(t, err)
	assert.Equal(t, "alice", string(id))
}

func TestToken_PromptsForIdentityAndSecret(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func(int) ([]byte, error) { return []byte("typed"), nil }

	app, out := newTestApp(t, &fakeLedger{}, "")
	app.reader = bufio.NewReader(strings.NewReader("bob\n"))

	require.NoError(t, app.Run(context.Background(), []string{"token"}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	id, err := token.GetIdentityFromToken(lines[len(lines)-1], []byte("typed"))
	require.NoError(t, err)
	assert.Equal(t, "bob", string(id))
}

func TestToken_PromptError(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	boom := errors.New("not a terminal")
	readPassword = func(int) ([]byte, error) { return nil, boom }

	app, _ := newTestApp(t, &fakeLedger{}, "")
	assert.ErrorIs(t, app.Run(context.Background(), []string{"token", "alice"}), boom)
}

func TestFileCommands_NeedToken(t *testing.T) {
	for _, args := range [][]string{{"share", "1", "bob"}, {"download", "1"}, {"revoke", "1"}} {
		f := &fakeLedger{}
		app, _ := newTestApp(t, f, "")
		err := app.Run(context.Background(), args)
		assert.ErrorContains(t, err, "access token", args)
		assert.NotContains(t, f.calls, "ShareFile")
	}
}

func TestUpload(t *testing.T) {
	var got []byte
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = io.ReadAll(r.Body)
	}))
	defer ts.Close()

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello ledger"), 0o600))
	wantHash, _, err := cryptox.HashFile(path)
	require.NoError(t, err)

	f := &fakeLedger{putURL: ts.URL + "/blobs/x"}
	app, out := newTestApp(t, f, tokenFor(t, "alice"))

	require.NoError(t, app.Run(context.Background(), []string{"upload", path, "-public"}))

	assert.Equal(t, []string{"PresignUpload", "UploadFile"}, f.calls)
	assert.Equal(t, "hello ledger", string(got))
	assert.Equal(t, &api.UploadFileRequest{Owner: "alice", FileName: "notes.txt", FileHash: wantHash, FileSize: 12, IsPublic: true}, f.upload)
	assert.Contains(t, out.String(), "as file 5")
}

func TestUpload_StorageFailureRecordsNothing(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	path := filepath.Join(t.TempDir(), "a.bin")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0o600))

	f := &fakeLedger{putURL: ts.URL}
	app, _ := newTestApp(t, f, tokenFor(t, "alice"))

	assert.Error(t, app.Run(context.Background(), []string{"upload", path}))
	assert.NotContains(t, f.calls, "UploadFile")
}

func TestShare(t *testing.T) {
	orig := now
	t.Cleanup(func() { now = orig })
	now = func() time.Time { return time.Unix(1_000, 0) }

	tests := []struct {
		args   []string
		expiry uint64
	}{
		{[]string{"share", "3", "bob"}, 0},
		{[]string{"share", "3", "bob", "5000"}, 5_000},
		{[]string{"share", "3", "bob", "1h"}, 4_600},
	}

	for _, tt := range tests {
		f := &fakeLedger{}
		app, out := newTestApp(t, f, tokenFor(t, "alice"))
		require.NoError(t, app.Run(context.Background(), tt.args))
		assert.Equal(t, &api.ShareFileRequest{Owner: "alice", FileID: 3, SharedWith: "bob", ExpiryTime: tt.expiry}, f.share)
		assert.Contains(t, out.String(), "permission 9")
	}

	for _, args := range [][]string{{"share", "x", "bob"}, {"share", "0", "bob"}, {"share", "3", "bob", "-1h"}, {"share", "3"}} {
		app, _ := newTestApp(t, &fakeLedger{}, tokenFor(t, "alice"))
		assert.ErrorIs(t, app.Run(context.Background(), args), ErrUsage, args)
	}
}

func TestDownload(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("content"))
	}))
	defer ts.Close()

	t.Chdir(t.TempDir())
	cwd, err := os.Getwd()
	require.NoError(t, err)

	f := &fakeLedger{file: api.FileRecord{FileID: 2, FileName: "report.pdf"}, getURL: ts.URL}
	app, out := newTestApp(t, f, tokenFor(t, "bob"))

	require.NoError(t, app.Run(context.Background(), []string{"download", "2"}))
	assert.Equal(t, []string{"GetFile", "RecordDownload", "PresignDownload"}, f.calls)
	assert.Equal(t, "bob", f.download)

	data, err := os.ReadFile(filepath.Join(cwd, "download", "report.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
	assert.Contains(t, out.String(), "(7 bytes)")
}

func TestDownload_RefusedFetchesNothing(t *testing.T) {
	f := &fakeLedger{err: common.ErrorUnauthorized}
	app, _ := newTestApp(t, f, tokenFor(t, "bob"))

	assert.ErrorIs(t, app.Run(context.Background(), []string{"download", "2"}), common.ErrorUnauthorized)
	assert.NotContains(t, f.calls, "PresignDownload")
}

func TestRevoke(t *testing.T) {
	f := &fakeLedger{}
	app, out := newTestApp(t, f, tokenFor(t, "alice"))

	require.NoError(t, app.Run(context.Background(), []string{"revoke", "4"}))
	assert.Equal(t, "alice", f.revokeBy)
	assert.Equal(t, "revoked permission 4\n", out.String())
}

func TestReadCommands(t *testing.T) {
	f := &fakeLedger{
		file:  api.FileRecord{FileID: 1, FileName: "a.txt", Owner: "alice", UploadTime: 0, DownloadCount: 3},
		perm:  api.SharePermission{PermissionID: 2, FileID: 1, SharedWith: "bob", CanDownload: true},
		count: 4,
		stats: api.SyncStats{TotalFiles: 1, TotalShares: 2, TotalDownloads: 3, ActiveUsers: 4},
	}

	run := func(args ...string) string {
		app, out := newTestApp(t, f, "")
		require.NoError(t, app.Run(context.Background(), args))
		return out.String()
	}

	fileOut := run("file", "1")
	assert.Regexp(t, `name\s+a.txt`, fileOut)
	assert.Regexp(t, `downloads\s+3`, fileOut)

	permOut := run("perm", "2")
	assert.Regexp(t, `shared with\s+bob`, permOut)
	assert.Regexp(t, `expires\s+never`, permOut)

	assert.Equal(t, "alice: 4 files\n", run("count", "alice"))
	assert.Regexp(t, `active users\s+4`, run("stats"))
	assert.Equal(t, "OK\n", run("ping"))
}

func TestReadCommands_NotFound(t *testing.T) {
	app, out := newTestApp(t, &fakeLedger{}, "")
	require.NoError(t, app.Run(context.Background(), []string{"file", "7"}))
	assert.Equal(t, "file 7 not found\n", out.String())

	app, out = newTestApp(t, &fakeLedger{}, "")
	require.NoError(t, app.Run(context.Background(), []string{"perm", "7"}))
	assert.Equal(t, "permission 7 not found\n", out.String())
}

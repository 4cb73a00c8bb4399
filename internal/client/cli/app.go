// Package cli implements the ledgerctl commands.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/fileledger/internal/api"
	"github.com/dmitrijs2005/fileledger/internal/client/config"
	"github.com/dmitrijs2005/fileledger/internal/client/ledger"
	"github.com/dmitrijs2005/fileledger/internal/netx"
	"github.com/dmitrijs2005/fileledger/internal/token"
)

// ErrUsage is returned for malformed command lines.
var ErrUsage = errors.New("usage")

type ledgerClient interface {
	Ping(ctx context.Context) error
	Mint(ctx context.Context, user, amount string) error
	Redeem(ctx context.Context, user, amount string) error
	GetBalance(ctx context.Context, user string) (string, error)
	ResetBalance(ctx context.Context, user string) error
	UploadFile(ctx context.Context, req *api.UploadFileRequest) (uint64, error)
	ShareFile(ctx context.Context, req *api.ShareFileRequest) (uint64, error)
	RecordDownload(ctx context.Context, fileID uint64, downloader string) error
	RevokeShare(ctx context.Context, owner string, permissionID uint64) error
	GetFile(ctx context.Context, fileID uint64) (api.FileRecord, error)
	GetShare(ctx context.Context, permissionID uint64) (api.SharePermission, error)
	GetUserFileCount(ctx context.Context, owner string) (uint64, error)
	GetSyncStats(ctx context.Context) (api.SyncStats, error)
	PresignUpload(ctx context.Context, hash string) (string, string, error)
	PresignDownload(ctx context.Context, fileID uint64) (string, error)
	Close() error
}

type App struct {
	config *config.Config
	client ledgerClient
	http   netx.HTTPDoer
	out    io.Writer
	reader *bufio.Reader
	// downloadDir is created under the working directory on first download.
	downloadDir string
}

func NewApp(c *config.Config) (*App, error) {
	client, err := ledger.NewGRPCClient(c.ServerEndpointAddr, c.AccessToken, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return &App{
		config:      c,
		client:      client,
		http:        &http.Client{},
		out:         os.Stdout,
		reader:      bufio.NewReader(os.Stdin),
		downloadDir: "download",
	}, nil
}

// identity is who the configured access token was issued for.
func (a *App) identity() (string, error) {
	if a.config.AccessToken == "" {
		return "", fmt.Errorf("this command needs an access token (-k); create one with 'ledgerctl token <identity>'")
	}
	return token.PeekIdentity(a.config.AccessToken)
}

const usageText = `Usage: ledgerctl [flags] <command> [args]

Rewards:
  mint <user> <amount>          add points
  redeem <user> <amount>        burn points
  balance <user>                show points
  reset <user>                  set points to 0

Files (need -k <token>):
  upload <path> [-public]       store content and record the upload
  share <file_id> <identity> [expiry]
                                expiry: unix seconds or a duration like 24h; omit for never
  download <file_id>            record a download and fetch the content
  revoke <permission_id>        revoke a share

Reads:
  file <file_id>    perm <permission_id>    count <identity>    stats

Other:
  token [identity]              issue an access token (secret from -s or prompt)
  ping                          check the server
`

func (a *App) usage() {
	fmt.Fprint(a.out, usageText)
}

// Run executes one command.
func (a *App) Run(ctx context.Context, args []string) error {
	defer a.client.Close()

	if len(args) == 0 {
		a.usage()
		return ErrUsage
	}

	cmd, args := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		a.usage()
		return nil
	case "token":
		return a.token(args)
	case "ping":
		return a.ping(ctx)
	case "mint":
		return a.mint(ctx, args)
	case "redeem":
		return a.redeem(ctx, args)
	case "balance":
		return a.balance(ctx, args)
	case "reset":
		return a.reset(ctx, args)
	case "upload":
		return a.upload(ctx, args)
	case "share":
		return a.share(ctx, args)
	case "download":
		return a.download(ctx, args)
	case "revoke":
		return a.revoke(ctx, args)
	case "file":
		return a.file(ctx, args)
	case "perm":
		return a.perm(ctx, args)
	case "count":
		return a.count(ctx, args)
	case "stats":
		return a.stats(ctx)
	}

	a.usage()
	return fmt.Errorf("unknown command %q: %w", cmd, ErrUsage)
}

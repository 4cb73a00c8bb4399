package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/fileledger/internal/api"
	"github.com/dmitrijs2005/fileledger/internal/cryptox"
	"github.com/dmitrijs2005/fileledger/internal/filex"
	"github.com/dmitrijs2005/fileledger/internal/netx"
)

// now is a test seam for expiry computation.
var now = time.Now

func parseID(name, s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s %q: %w", name, s, ErrUsage)
	}
	return id, nil
}

// parseExpiry accepts unix seconds or a duration from now. An empty string
// means the permission never expires.
func parseExpiry(s string) (uint64, error) {
	if s == "" {
		return 0, nil
	}
	if v, err := strconv.ParseUint(s, 10, 64); err == nil {
		return v, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid expiry %q: %w", s, ErrUsage)
	}
	return uint64(now().Add(d).Unix()), nil
}

// upload stores the file content under its hash, then records the upload.
func (a *App) upload(ctx context.Context, args []string) error {
	var path string
	public := false
	for _, arg := range args {
		switch arg {
		case "-public", "--public":
			public = true
		default:
			if path != "" {
				return fmt.Errorf("upload <path> [-public]: %w", ErrUsage)
			}
			path = arg
		}
	}
	if path == "" {
		return fmt.Errorf("upload <path> [-public]: %w", ErrUsage)
	}

	owner, err := a.identity()
	if err != nil {
		return err
	}

	hash, size, err := cryptox.HashFile(path)
	if err != nil {
		return err
	}

	_, url, err := a.client.PresignUpload(ctx, hash)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := netx.UploadToPresignedURL(ctx, a.http, url, f, size); err != nil {
		return err
	}

	id, err := a.client.UploadFile(ctx, &api.UploadFileRequest{
		Owner:    owner,
		FileName: filepath.Base(path),
		FileHash: hash,
		FileSize: uint64(size),
		IsPublic: public,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "uploaded %s as file %d (%d bytes, blake2b-256 %s)\n", filepath.Base(path), id, size, hash)
	return nil
}

func (a *App) share(ctx context.Context, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("share <file_id> <identity> [expiry]: %w", ErrUsage)
	}
	fileID, err := parseID("file id", args[0])
	if err != nil {
		return err
	}
	var expiry uint64
	if len(args) == 3 {
		if expiry, err = parseExpiry(args[2]); err != nil {
			return err
		}
	}

	owner, err := a.identity()
	if err != nil {
		return err
	}

	permID, err := a.client.ShareFile(ctx, &api.ShareFileRequest{
		Owner:      owner,
		FileID:     fileID,
		SharedWith: args[1],
		ExpiryTime: expiry,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "shared file %d with %s as permission %d\n", fileID, args[1], permID)
	return nil
}

// download records the download first, so a refused download fetches nothing.
func (a *App) download(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("download <file_id>: %w", ErrUsage)
	}
	fileID, err := parseID("file id", args[0])
	if err != nil {
		return err
	}

	me, err := a.identity()
	if err != nil {
		return err
	}

	file, err := a.client.GetFile(ctx, fileID)
	if err != nil {
		return err
	}

	if err := a.client.RecordDownload(ctx, fileID, me); err != nil {
		return err
	}

	url, err := a.client.PresignDownload(ctx, fileID)
	if err != nil {
		return err
	}

	dir, err := filex.EnsureSubdDir(a.downloadDir)
	if err != nil {
		return err
	}
	dest := filex.FreePath(dir, file.FileName)

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	n, err := netx.DownloadFromPresignedURL(ctx, a.http, url, out)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dest)
		return err
	}

	fmt.Fprintf(a.out, "downloaded file %d to %s (%d bytes)\n", fileID, dest, n)
	return nil
}

func (a *App) revoke(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("revoke <permission_id>: %w", ErrUsage)
	}
	permID, err := parseID("permission id", args[0])
	if err != nil {
		return err
	}

	owner, err := a.identity()
	if err != nil {
		return err
	}

	if err := a.client.RevokeShare(ctx, owner, permID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "revoked permission %d\n", permID)
	return nil
}

func formatTime(ts uint64) string {
	if ts == 0 {
		return "never"
	}
	return time.Unix(int64(ts), 0).UTC().Format(time.RFC3339)
}

func (a *App) file(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("file <file_id>: %w", ErrUsage)
	}
	fileID, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid file id %q: %w", args[0], ErrUsage)
	}

	f, err := a.client.GetFile(ctx, fileID)
	if err != nil {
		return err
	}
	if f.FileID == 0 {
		fmt.Fprintf(a.out, "file %d not found\n", fileID)
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "id\t%d\n", f.FileID)
	fmt.Fprintf(tw, "name\t%s\n", f.FileName)
	fmt.Fprintf(tw, "owner\t%s\n", f.Owner)
	fmt.Fprintf(tw, "hash\t%s\n", f.FileHash)
	fmt.Fprintf(tw, "size\t%d\n", f.FileSize)
	fmt.Fprintf(tw, "uploaded\t%s\n", formatTime(f.UploadTime))
	fmt.Fprintf(tw, "public\t%t\n", f.IsPublic)
	fmt.Fprintf(tw, "downloads\t%d\n", f.DownloadCount)
	return tw.Flush()
}

func (a *App) perm(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("perm <permission_id>: %w", ErrUsage)
	}
	permID, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid permission id %q: %w", args[0], ErrUsage)
	}

	p, err := a.client.GetShare(ctx, permID)
	if err != nil {
		return err
	}
	if p.PermissionID == 0 {
		fmt.Fprintf(a.out, "permission %d not found\n", permID)
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "id\t%d\n", p.PermissionID)
	fmt.Fprintf(tw, "file\t%d\n", p.FileID)
	fmt.Fprintf(tw, "owner\t%s\n", p.Owner)
	fmt.Fprintf(tw, "shared with\t%s\n", p.SharedWith)
	fmt.Fprintf(tw, "can download\t%t\n", p.CanDownload)
	fmt.Fprintf(tw, "granted\t%s\n", formatTime(p.GrantedTime))
	fmt.Fprintf(tw, "expires\t%s\n", formatTime(p.ExpiryTime))
	return tw.Flush()
}

func (a *App) count(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("count <identity>: %w", ErrUsage)
	}
	n, err := a.client.GetUserFileCount(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s: %d files\n", args[0], n)
	return nil
}

func (a *App) stats(ctx context.Context) error {
	s, err := a.client.GetSyncStats(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "files\t%d\n", s.TotalFiles)
	fmt.Fprintf(tw, "shares\t%d\n", s.TotalShares)
	fmt.Fprintf(tw, "downloads\t%d\n", s.TotalDownloads)
	fmt.Fprintf(tw, "active users\t%d\n", s.ActiveUsers)
	return tw.Flush()
}

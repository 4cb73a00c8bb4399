// Package ledger is the gRPC client of the ledger service used by ledgerctl.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fileledger/internal/api"
	"github.com/dmitrijs2005/fileledger/internal/common"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	conn        *grpc.ClientConn
	client      *api.LedgerServiceClient
	accessToken string
	timeout     time.Duration
}

func NewGRPCClient(endpointURL, accessToken string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{accessToken: accessToken, timeout: timeout}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.metadataInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = api.NewLedgerServiceClient(conn)
	return c, nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

// metadataInterceptor attaches the access token (when set) and a fresh
// request id to every call.
func (c *GRPCClient) metadataInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	pairs := []string{common.RequestIDHeaderName, uuid.NewString()}
	if c.accessToken != "" {
		pairs = append(pairs, common.AccessTokenHeaderName, c.accessToken)
	}
	ctx = metadata.AppendToOutgoingContext(ctx, pairs...)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	return invoker(ctx, method, req, reply, cc, opts...)
}

// mapError turns gRPC statuses back into the ledger's sentinel errors.
func mapError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	var sentinel error
	switch st.Code() {
	case codes.NotFound:
		sentinel = common.ErrorNotFound
	case codes.PermissionDenied:
		sentinel = common.ErrorUnauthorized
	case codes.Unauthenticated:
		if st.Message() == "token expired" {
			sentinel = common.ErrTokenExpired
		} else {
			sentinel = common.ErrInvalidToken
		}
	case codes.FailedPrecondition:
		sentinel = common.ErrorInsufficientBalance
	case codes.InvalidArgument:
		sentinel = common.ErrorIncorrectMetadata
	default:
		return err
	}
	return fmt.Errorf("%s: %w", st.Message(), sentinel)
}

func (c *GRPCClient) Ping(ctx context.Context) error {
	_, err := c.client.Ping(ctx, &api.PingRequest{})
	return mapError(err)
}

func (c *GRPCClient) Mint(ctx context.Context, user, amount string) error {
	_, err := c.client.Mint(ctx, &api.MintRequest{User: user, Amount: amount})
	return mapError(err)
}

func (c *GRPCClient) Redeem(ctx context.Context, user, amount string) error {
	_, err := c.client.Redeem(ctx, &api.RedeemRequest{User: user, Amount: amount})
	return mapError(err)
}

func (c *GRPCClient) GetBalance(ctx context.Context, user string) (string, error) {
	resp, err := c.client.GetBalance(ctx, &api.GetBalanceRequest{User: user})
	if err != nil {
		return "", mapError(err)
	}
	return resp.Points, nil
}

func (c *GRPCClient) ResetBalance(ctx context.Context, user string) error {
	_, err := c.client.ResetBalance(ctx, &api.ResetBalanceRequest{User: user})
	return mapError(err)
}

func (c *GRPCClient) UploadFile(ctx context.Context, req *api.UploadFileRequest) (uint64, error) {
	resp, err := c.client.UploadFile(ctx, req)
	if err != nil {
		return 0, mapError(err)
	}
	return resp.FileID, nil
}

func (c *GRPCClient) ShareFile(ctx context.Context, req *api.ShareFileRequest) (uint64, error) {
	resp, err := c.client.ShareFile(ctx, req)
	if err != nil {
		return 0, mapError(err)
	}
	return resp.PermissionID, nil
}

func (c *GRPCClient) RecordDownload(ctx context.Context, fileID uint64, downloader string) error {
	_, err := c.client.RecordDownload(ctx, &api.RecordDownloadRequest{FileID: fileID, Downloader: downloader})
	return mapError(err)
}

func (c *GRPCClient) RevokeShare(ctx context.Context, owner string, permissionID uint64) error {
	_, err := c.client.RevokeShare(ctx, &api.RevokeShareRequest{Owner: owner, PermissionID: permissionID})
	return mapError(err)
}

func (c *GRPCClient) GetFile(ctx context.Context, fileID uint64) (api.FileRecord, error) {
	resp, err := c.client.GetFile(ctx, &api.GetFileRequest{FileID: fileID})
	if err != nil {
		return api.FileRecord{}, mapError(err)
	}
	return resp.File, nil
}

func (c *GRPCClient) GetShare(ctx context.Context, permissionID uint64) (api.SharePermission, error) {
	resp, err := c.client.GetShare(ctx, &api.GetShareRequest{PermissionID: permissionID})
	if err != nil {
		return api.SharePermission{}, mapError(err)
	}
	return resp.Permission, nil
}

func (c *GRPCClient) GetUserFileCount(ctx context.Context, owner string) (uint64, error) {
	resp, err := c.client.GetUserFileCount(ctx, &api.GetUserFileCountRequest{Owner: owner})
	if err != nil {
		return 0, mapError(err)
	}
	return resp.Count, nil
}

func (c *GRPCClient) GetSyncStats(ctx context.Context) (api.SyncStats, error) {
	resp, err := c.client.GetSyncStats(ctx, &api.GetSyncStatsRequest{})
	if err != nil {
		return api.SyncStats{}, mapError(err)
	}
	return resp.Stats, nil
}

func (c *GRPCClient) PresignUpload(ctx context.Context, hash string) (string, string, error) {
	resp, err := c.client.PresignUpload(ctx, &api.PresignUploadRequest{FileHash: hash})
	if err != nil {
		return "", "", mapError(err)
	}
	return resp.ObjectKey, resp.URL, nil
}

func (c *GRPCClient) PresignDownload(ctx context.Context, fileID uint64) (string, error) {
	resp, err := c.client.PresignDownload(ctx, &api.PresignDownloadRequest{FileID: fileID})
	if err != nil {
		return "", mapError(err)
	}
	return resp.URL, nil
}

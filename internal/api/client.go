package api

import (
	"context"

	"google.golang.org/grpc"
)

// LedgerServiceClient is the client side of LedgerService. Calls are sent
// with the protobuf codec of this package.
type LedgerServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewLedgerServiceClient(cc grpc.ClientConnInterface) *LedgerServiceClient {
	return &LedgerServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *LedgerServiceClient) Mint(ctx context.Context, in *MintRequest, opts ...grpc.CallOption) (*MintResponse, error) {
	return invoke[MintResponse](ctx, c.cc, MethodMint, in, opts)
}

func (c *LedgerServiceClient) Redeem(ctx context.Context, in *RedeemRequest, opts ...grpc.CallOption) (*RedeemResponse, error) {
	return invoke[RedeemResponse](ctx, c.cc, MethodRedeem, in, opts)
}

func (c *LedgerServiceClient) GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*GetBalanceResponse, error) {
	return invoke[GetBalanceResponse](ctx, c.cc, MethodGetBalance, in, opts)
}

func (c *LedgerServiceClient) ResetBalance(ctx context.Context, in *ResetBalanceRequest, opts ...grpc.CallOption) (*ResetBalanceResponse, error) {
	return invoke[ResetBalanceResponse](ctx, c.cc, MethodResetBalance, in, opts)
}

func (c *LedgerServiceClient) UploadFile(ctx context.Context, in *UploadFileRequest, opts ...grpc.CallOption) (*UploadFileResponse, error) {
	return invoke[UploadFileResponse](ctx, c.cc, MethodUploadFile, in, opts)
}

func (c *LedgerServiceClient) ShareFile(ctx context.Context, in *ShareFileRequest, opts ...grpc.CallOption) (*ShareFileResponse, error) {
	return invoke[ShareFileResponse](ctx, c.cc, MethodShareFile, in, opts)
}

func (c *LedgerServiceClient) RecordDownload(ctx context.Context, in *RecordDownloadRequest, opts ...grpc.CallOption) (*RecordDownloadResponse, error) {
	return invoke[RecordDownloadResponse](ctx, c.cc, MethodRecordDownload, in, opts)
}

func (c *LedgerServiceClient) RevokeShare(ctx context.Context, in *RevokeShareRequest, opts ...grpc.CallOption) (*RevokeShareResponse, error) {
	return invoke[RevokeShareResponse](ctx, c.cc, MethodRevokeShare, in, opts)
}

func (c *LedgerServiceClient) GetFile(ctx context.Context, in *GetFileRequest, opts ...grpc.CallOption) (*GetFileResponse, error) {
	return invoke[GetFileResponse](ctx, c.cc, MethodGetFile, in, opts)
}

func (c *LedgerServiceClient) GetShare(ctx context.Context, in *GetShareRequest, opts ...grpc.CallOption) (*GetShareResponse, error) {
	return invoke[GetShareResponse](ctx, c.cc, MethodGetShare, in, opts)
}

func (c *LedgerServiceClient) GetUserFileCount(ctx context.Context, in *GetUserFileCountRequest, opts ...grpc.CallOption) (*GetUserFileCountResponse, error) {
	return invoke[GetUserFileCountResponse](ctx, c.cc, MethodGetUserFileCount, in, opts)
}

func (c *LedgerServiceClient) GetSyncStats(ctx context.Context, in *GetSyncStatsRequest, opts ...grpc.CallOption) (*GetSyncStatsResponse, error) {
	return invoke[GetSyncStatsResponse](ctx, c.cc, MethodGetSyncStats, in, opts)
}

func (c *LedgerServiceClient) PresignUpload(ctx context.Context, in *PresignUploadRequest, opts ...grpc.CallOption) (*PresignUploadResponse, error) {
	return invoke[PresignUploadResponse](ctx, c.cc, MethodPresignUpload, in, opts)
}

func (c *LedgerServiceClient) PresignDownload(ctx context.Context, in *PresignDownloadRequest, opts ...grpc.CallOption) (*PresignDownloadResponse, error) {
	return invoke[PresignDownloadResponse](ctx, c.cc, MethodPresignDownload, in, opts)
}

func (c *LedgerServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

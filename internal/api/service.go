package api

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "fileledger.LedgerService"

const (
	MethodMint             = "/" + ServiceName + "/Mint"
	MethodRedeem           = "/" + ServiceName + "/Redeem"
	MethodGetBalance       = "/" + ServiceName + "/GetBalance"
	MethodResetBalance     = "/" + ServiceName + "/ResetBalance"
	MethodUploadFile       = "/" + ServiceName + "/UploadFile"
	MethodShareFile        = "/" + ServiceName + "/ShareFile"
	MethodRecordDownload   = "/" + ServiceName + "/RecordDownload"
	MethodRevokeShare      = "/" + ServiceName + "/RevokeShare"
	MethodGetFile          = "/" + ServiceName + "/GetFile"
	MethodGetShare         = "/" + ServiceName + "/GetShare"
	MethodGetUserFileCount = "/" + ServiceName + "/GetUserFileCount"
	MethodGetSyncStats     = "/" + ServiceName + "/GetSyncStats"
	MethodPresignUpload    = "/" + ServiceName + "/PresignUpload"
	MethodPresignDownload  = "/" + ServiceName + "/PresignDownload"
	MethodPing             = "/" + ServiceName + "/Ping"
)

// LedgerServiceServer is implemented by the ledger gRPC server.
type LedgerServiceServer interface {
	Mint(context.Context, *MintRequest) (*MintResponse, error)
	Redeem(context.Context, *RedeemRequest) (*RedeemResponse, error)
	GetBalance(context.Context, *GetBalanceRequest) (*GetBalanceResponse, error)
	ResetBalance(context.Context, *ResetBalanceRequest) (*ResetBalanceResponse, error)
	UploadFile(context.Context, *UploadFileRequest) (*UploadFileResponse, error)
	ShareFile(context.Context, *ShareFileRequest) (*ShareFileResponse, error)
	RecordDownload(context.Context, *RecordDownloadRequest) (*RecordDownloadResponse, error)
	RevokeShare(context.Context, *RevokeShareRequest) (*RevokeShareResponse, error)
	GetFile(context.Context, *GetFileRequest) (*GetFileResponse, error)
	GetShare(context.Context, *GetShareRequest) (*GetShareResponse, error)
	GetUserFileCount(context.Context, *GetUserFileCountRequest) (*GetUserFileCountResponse, error)
	GetSyncStats(context.Context, *GetSyncStatsRequest) (*GetSyncStatsResponse, error)
	PresignUpload(context.Context, *PresignUploadRequest) (*PresignUploadResponse, error)
	PresignDownload(context.Context, *PresignDownloadRequest) (*PresignDownloadResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// unary builds the method descriptor for one server method, running it
// through the server's interceptor chain.
func unary[Req, Resp any](name string, call func(LedgerServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(LedgerServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(LedgerServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var LedgerServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LedgerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Mint", LedgerServiceServer.Mint),
		unary("Redeem", LedgerServiceServer.Redeem),
		unary("GetBalance", LedgerServiceServer.GetBalance),
		unary("ResetBalance", LedgerServiceServer.ResetBalance),
		unary("UploadFile", LedgerServiceServer.UploadFile),
		unary("ShareFile", LedgerServiceServer.ShareFile),
		unary("RecordDownload", LedgerServiceServer.RecordDownload),
		unary("RevokeShare", LedgerServiceServer.RevokeShare),
		unary("GetFile", LedgerServiceServer.GetFile),
		unary("GetShare", LedgerServiceServer.GetShare),
		unary("GetUserFileCount", LedgerServiceServer.GetUserFileCount),
		unary("GetSyncStats", LedgerServiceServer.GetSyncStats),
		unary("PresignUpload", LedgerServiceServer.PresignUpload),
		unary("PresignDownload", LedgerServiceServer.PresignDownload),
		unary("Ping", LedgerServiceServer.Ping),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: ProtoFile,
}

func RegisterLedgerServiceServer(s grpc.ServiceRegistrar, srv LedgerServiceServer) {
	s.RegisterService(&LedgerServiceDesc, srv)
}

// Package grpc exposes the reward and file-sync ledgers over gRPC.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/fileledger/internal/api"
	"github.com/dmitrijs2005/fileledger/internal/logging"
	"github.com/dmitrijs2005/fileledger/internal/server/models"
	"google.golang.org/grpc"
)

type rewardSvc interface {
	Mint(ctx context.Context, user models.UserID, amount models.Points) error
	Redeem(ctx context.Context, user models.UserID, amount models.Points) error
	GetBalance(ctx context.Context, user models.UserID) (models.Points, error)
	ResetBalance(ctx context.Context, user models.UserID) error
}

type fileSvc interface {
	UploadFile(ctx context.Context, owner models.Identity, name, hash string, size uint64, isPublic bool) (uint64, error)
	ShareFile(ctx context.Context, owner models.Identity, fileID uint64, sharedWith models.Identity, expiryTime uint64) (uint64, error)
	RecordDownload(ctx context.Context, fileID uint64, downloader models.Identity) error
	RevokeShare(ctx context.Context, owner models.Identity, permissionID uint64) error
	GetFile(ctx context.Context, fileID uint64) (models.FileRecord, error)
	GetShare(ctx context.Context, permissionID uint64) (models.SharePermission, error)
	GetUserFileCount(ctx context.Context, owner models.Identity) (uint64, error)
	GetSyncStats(ctx context.Context) (models.SyncStats, error)
}

type blobSvc interface {
	PresignUpload(ctx context.Context, hash string) (string, string, error)
	PresignDownload(ctx context.Context, fileID uint64) (string, error)
}

type GRPCServer struct {
	address   string
	rewards   rewardSvc
	files     fileSvc
	blobs     blobSvc
	logger    logging.Logger
	jwtSecret []byte
	// maxTokenLifetime caps exp-iat of accepted tokens; 0 accepts any.
	maxTokenLifetime time.Duration
}

func NewGRPCServer(a string, l logging.Logger, rs rewardSvc, fs fileSvc, bs blobSvc, secretKey string, maxTokenLifetime time.Duration) *GRPCServer {
	return &GRPCServer{
		address:          a,
		logger:           l.With("module", "grpc_server"),
		rewards:          rs,
		files:            fs,
		blobs:            bs,
		jwtSecret:        []byte(secretKey),
		maxTokenLifetime: maxTokenLifetime,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	api.RegisterLedgerServiceServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
// In-flight calls get a few seconds to finish before the server is closed.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-time.After(5 * time.Second):
			srv.Stop()
		}
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}

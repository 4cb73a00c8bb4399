package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/fileledger/internal/api"
	"github.com/dmitrijs2005/fileledger/internal/common"
	"github.com/dmitrijs2005/fileledger/internal/server/auth"
	"github.com/dmitrijs2005/fileledger/internal/server/models"
	"github.com/dmitrijs2005/fileledger/internal/token"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// protectedMethods cannot be called without a valid access token.
var protectedMethods = map[string]struct{}{
	api.MethodUploadFile:      {},
	api.MethodShareFile:       {},
	api.MethodRecordDownload:  {},
	api.MethodRevokeShare:     {},
	api.MethodPresignUpload:   {},
	api.MethodPresignDownload: {},
}

func firstMetadata(ctx context.Context, key string) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(key); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// tokenLifetimeSlack covers the one-second precision of token timestamps.
const tokenLifetimeSlack = time.Second

// accessTokenInterceptor verifies the access token when one is sent and
// puts the caller identity into the context. Protected methods require it.
// Tokens issued for longer than maxTokenLifetime are refused.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	_, protected := protectedMethods[info.FullMethod]

	accessToken := firstMetadata(ctx, common.AccessTokenHeaderName)
	if len(accessToken) == 0 {
		if protected {
			return nil, status.Error(codes.Unauthenticated, "missing token")
		}
		return handler(ctx, req)
	}

	claims, err := token.GetClaimsFromToken(accessToken, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, "token expired")
		}
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}

	if s.maxTokenLifetime > 0 {
		lifetime := claims.Lifetime()
		if lifetime <= 0 || lifetime > s.maxTokenLifetime+tokenLifetimeSlack {
			return nil, status.Error(codes.Unauthenticated, "token lifetime exceeds limit")
		}
	}

	return handler(auth.WithIdentity(ctx, models.Identity(claims.UserID)), req)
}

// loggingInterceptor tags every call with a request id (taken from the
// caller or generated) and logs its outcome.
func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	requestID := firstMetadata(ctx, common.RequestIDHeaderName)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	// fails only outside a real stream
	_ = grpc.SetHeader(ctx, metadata.Pairs(common.RequestIDHeaderName, requestID))

	start := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	args := []any{"request_id", requestID, "method", info.FullMethod, "code", code.String(), "duration", time.Since(start)}
	if code == codes.Internal || code == codes.Unknown {
		s.logger.Error(ctx, "request failed", append(args, "error", err)...)
	} else {
		s.logger.Info(ctx, "request", args...)
	}

	return resp, err
}

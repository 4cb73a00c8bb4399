package grpc

import (
	"context"

	"github.com/dmitrijs2005/fileledger/internal/api"
	"github.com/dmitrijs2005/fileledger/internal/server/models"
)

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) Mint(ctx context.Context, req *api.MintRequest) (*api.MintResponse, error) {
	amount, err := models.ParsePoints(req.Amount)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	if err := s.rewards.Mint(ctx, models.UserID(req.User), amount); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.MintResponse{}, nil
}

func (s *GRPCServer) Redeem(ctx context.Context, req *api.RedeemRequest) (*api.RedeemResponse, error) {
	amount, err := models.ParsePoints(req.Amount)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	if err := s.rewards.Redeem(ctx, models.UserID(req.User), amount); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.RedeemResponse{}, nil
}

func (s *GRPCServer) GetBalance(ctx context.Context, req *api.GetBalanceRequest) (*api.GetBalanceResponse, error) {
	points, err := s.rewards.GetBalance(ctx, models.UserID(req.User))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.GetBalanceResponse{Points: points.String()}, nil
}

func (s *GRPCServer) ResetBalance(ctx context.Context, req *api.ResetBalanceRequest) (*api.ResetBalanceResponse, error) {
	if err := s.rewards.ResetBalance(ctx, models.UserID(req.User)); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.ResetBalanceResponse{}, nil
}

func (s *GRPCServer) UploadFile(ctx context.Context, req *api.UploadFileRequest) (*api.UploadFileResponse, error) {
	id, err := s.files.UploadFile(ctx, models.Identity(req.Owner), req.FileName, req.FileHash, req.FileSize, req.IsPublic)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.UploadFileResponse{FileID: id}, nil
}

func (s *GRPCServer) ShareFile(ctx context.Context, req *api.ShareFileRequest) (*api.ShareFileResponse, error) {
	id, err := s.files.ShareFile(ctx, models.Identity(req.Owner), req.FileID, models.Identity(req.SharedWith), req.ExpiryTime)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.ShareFileResponse{PermissionID: id}, nil
}

func (s *GRPCServer) RecordDownload(ctx context.Context, req *api.RecordDownloadRequest) (*api.RecordDownloadResponse, error) {
	if err := s.files.RecordDownload(ctx, req.FileID, models.Identity(req.Downloader)); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.RecordDownloadResponse{}, nil
}

func (s *GRPCServer) RevokeShare(ctx context.Context, req *api.RevokeShareRequest) (*api.RevokeShareResponse, error) {
	if err := s.files.RevokeShare(ctx, models.Identity(req.Owner), req.PermissionID); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.RevokeShareResponse{}, nil
}

func (s *GRPCServer) GetFile(ctx context.Context, req *api.GetFileRequest) (*api.GetFileResponse, error) {
	file, err := s.files.GetFile(ctx, req.FileID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.GetFileResponse{File: fileToAPI(file)}, nil
}

func (s *GRPCServer) GetShare(ctx context.Context, req *api.GetShareRequest) (*api.GetShareResponse, error) {
	perm, err := s.files.GetShare(ctx, req.PermissionID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.GetShareResponse{Permission: shareToAPI(perm)}, nil
}

func (s *GRPCServer) GetUserFileCount(ctx context.Context, req *api.GetUserFileCountRequest) (*api.GetUserFileCountResponse, error) {
	n, err := s.files.GetUserFileCount(ctx, models.Identity(req.Owner))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.GetUserFileCountResponse{Count: n}, nil
}

func (s *GRPCServer) GetSyncStats(ctx context.Context, req *api.GetSyncStatsRequest) (*api.GetSyncStatsResponse, error) {
	stats, err := s.files.GetSyncStats(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.GetSyncStatsResponse{Stats: statsToAPI(stats)}, nil
}

func (s *GRPCServer) PresignUpload(ctx context.Context, req *api.PresignUploadRequest) (*api.PresignUploadResponse, error) {
	key, url, err := s.blobs.PresignUpload(ctx, req.FileHash)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.PresignUploadResponse{ObjectKey: key, URL: url}, nil
}

func (s *GRPCServer) PresignDownload(ctx context.Context, req *api.PresignDownloadRequest) (*api.PresignDownloadResponse, error) {
	url, err := s.blobs.PresignDownload(ctx, req.FileID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.PresignDownloadResponse{URL: url}, nil
}

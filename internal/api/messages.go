package api

// Go views of the messages declared in ledger.proto. Field names and numbers
// in the protobuf tags must match the schema; TestMessagesMatchSchema checks it.

type FileRecord struct {
	FileID        uint64 `protobuf:"varint,1,opt,name=file_id,proto3" json:"file_id,omitempty"`
	Owner         string `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner,omitempty"`
	FileName      string `protobuf:"bytes,3,opt,name=file_name,proto3" json:"file_name,omitempty"`
	FileHash      string `protobuf:"bytes,4,opt,name=file_hash,proto3" json:"file_hash,omitempty"`
	FileSize      uint64 `protobuf:"varint,5,opt,name=file_size,proto3" json:"file_size,omitempty"`
	UploadTime    uint64 `protobuf:"varint,6,opt,name=upload_time,proto3" json:"upload_time,omitempty"`
	IsPublic      bool   `protobuf:"varint,7,opt,name=is_public,proto3" json:"is_public,omitempty"`
	DownloadCount uint64 `protobuf:"varint,8,opt,name=download_count,proto3" json:"download_count,omitempty"`
}

type SharePermission struct {
	PermissionID uint64 `protobuf:"varint,1,opt,name=permission_id,proto3" json:"permission_id,omitempty"`
	FileID       uint64 `protobuf:"varint,2,opt,name=file_id,proto3" json:"file_id,omitempty"`
	Owner        string `protobuf:"bytes,3,opt,name=owner,proto3" json:"owner,omitempty"`
	SharedWith   string `protobuf:"bytes,4,opt,name=shared_with,proto3" json:"shared_with,omitempty"`
	CanDownload  bool   `protobuf:"varint,5,opt,name=can_download,proto3" json:"can_download,omitempty"`
	ExpiryTime   uint64 `protobuf:"varint,6,opt,name=expiry_time,proto3" json:"expiry_time,omitempty"`
	GrantedTime  uint64 `protobuf:"varint,7,opt,name=granted_time,proto3" json:"granted_time,omitempty"`
}

type SyncStats struct {
	TotalFiles     uint64 `protobuf:"varint,1,opt,name=total_files,proto3" json:"total_files,omitempty"`
	TotalShares    uint64 `protobuf:"varint,2,opt,name=total_shares,proto3" json:"total_shares,omitempty"`
	TotalDownloads uint64 `protobuf:"varint,3,opt,name=total_downloads,proto3" json:"total_downloads,omitempty"`
	ActiveUsers    uint64 `protobuf:"varint,4,opt,name=active_users,proto3" json:"active_users,omitempty"`
}

type MintRequest struct {
	User   string `protobuf:"bytes,1,opt,name=user,proto3" json:"user,omitempty"`
	Amount string `protobuf:"bytes,2,opt,name=amount,proto3" json:"amount,omitempty"`
}

type MintResponse struct{}

type RedeemRequest struct {
	User   string `protobuf:"bytes,1,opt,name=user,proto3" json:"user,omitempty"`
	Amount string `protobuf:"bytes,2,opt,name=amount,proto3" json:"amount,omitempty"`
}

type RedeemResponse struct{}

type GetBalanceRequest struct {
	User string `protobuf:"bytes,1,opt,name=user,proto3" json:"user,omitempty"`
}

type GetBalanceResponse struct {
	Points string `protobuf:"bytes,1,opt,name=points,proto3" json:"points,omitempty"`
}

type ResetBalanceRequest struct {
	User string `protobuf:"bytes,1,opt,name=user,proto3" json:"user,omitempty"`
}

type ResetBalanceResponse struct{}

type UploadFileRequest struct {
	Owner    string `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	FileName string `protobuf:"bytes,2,opt,name=file_name,proto3" json:"file_name,omitempty"`
	FileHash string `protobuf:"bytes,3,opt,name=file_hash,proto3" json:"file_hash,omitempty"`
	FileSize uint64 `protobuf:"varint,4,opt,name=file_size,proto3" json:"file_size,omitempty"`
	IsPublic bool   `protobuf:"varint,5,opt,name=is_public,proto3" json:"is_public,omitempty"`
}

type UploadFileResponse struct {
	FileID uint64 `protobuf:"varint,1,opt,name=file_id,proto3" json:"file_id,omitempty"`
}

type ShareFileRequest struct {
	Owner      string `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	FileID     uint64 `protobuf:"varint,2,opt,name=file_id,proto3" json:"file_id,omitempty"`
	SharedWith string `protobuf:"bytes,3,opt,name=shared_with,proto3" json:"shared_with,omitempty"`
	// ExpiryTime is unix seconds, 0 for never.
	ExpiryTime uint64 `protobuf:"varint,4,opt,name=expiry_time,proto3" json:"expiry_time,omitempty"`
}

type ShareFileResponse struct {
	PermissionID uint64 `protobuf:"varint,1,opt,name=permission_id,proto3" json:"permission_id,omitempty"`
}

type RecordDownloadRequest struct {
	FileID     uint64 `protobuf:"varint,1,opt,name=file_id,proto3" json:"file_id,omitempty"`
	Downloader string `protobuf:"bytes,2,opt,name=downloader,proto3" json:"downloader,omitempty"`
}

type RecordDownloadResponse struct{}

type RevokeShareRequest struct {
	Owner        string `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	PermissionID uint64 `protobuf:"varint,2,opt,name=permission_id,proto3" json:"permission_id,omitempty"`
}

type RevokeShareResponse struct{}

type GetFileRequest struct {
	FileID uint64 `protobuf:"varint,1,opt,name=file_id,proto3" json:"file_id,omitempty"`
}

// GetFileResponse carries a zero File (FileID 0) when the id is unknown.
type GetFileResponse struct {
	File FileRecord `protobuf:"bytes,1,opt,name=file" json:"file,omitempty"`
}

type GetShareRequest struct {
	PermissionID uint64 `protobuf:"varint,1,opt,name=permission_id,proto3" json:"permission_id,omitempty"`
}

type GetShareResponse struct {
	Permission SharePermission `protobuf:"bytes,1,opt,name=permission" json:"permission,omitempty"`
}

type GetUserFileCountRequest struct {
	Owner string `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
}

type GetUserFileCountResponse struct {
	Count uint64 `protobuf:"varint,1,opt,name=count,proto3" json:"count,omitempty"`
}

type GetSyncStatsRequest struct{}

type GetSyncStatsResponse struct {
	Stats SyncStats `protobuf:"bytes,1,opt,name=stats" json:"stats,omitempty"`
}

type PresignUploadRequest struct {
	FileHash string `protobuf:"bytes,1,opt,name=file_hash,proto3" json:"file_hash,omitempty"`
}

type PresignUploadResponse struct {
	ObjectKey string `protobuf:"bytes,1,opt,name=object_key,proto3" json:"object_key,omitempty"`
	URL       string `protobuf:"bytes,2,opt,name=url,proto3" json:"url,omitempty"`
}

type PresignDownloadRequest struct {
	FileID uint64 `protobuf:"varint,1,opt,name=file_id,proto3" json:"file_id,omitempty"`
}

type PresignDownloadResponse struct {
	URL string `protobuf:"bytes,1,opt,name=url,proto3" json:"url,omitempty"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `protobuf:"bytes,1,opt,name=status,proto3" json:"status,omitempty"`
}

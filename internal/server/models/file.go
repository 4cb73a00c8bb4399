// Package models defines the records persisted by the ledger store.
package models

// Identity is a verified caller identity (file owner, share recipient,
// downloader).
type Identity string

// FileRecord is the metadata of one uploaded file. All fields except
// DownloadCount are immutable once created. FileID 0 means "not found".
type FileRecord struct {
	FileID        uint64   `json:"file_id"`
	Owner         Identity `json:"owner"`
	FileName      string   `json:"file_name"`
	FileHash      string   `json:"file_hash"`
	FileSize      uint64   `json:"file_size"`
	UploadTime    uint64   `json:"upload_time"`
	IsPublic      bool     `json:"is_public"`
	DownloadCount uint64   `json:"download_count"`
}

// Exists reports whether the record is a real file rather than the
// zero-valued sentinel.
func (f FileRecord) Exists() bool { return f.FileID != 0 }

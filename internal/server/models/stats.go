package models

// SyncStats is the process-wide aggregate maintained alongside every file
// and permission mutation.
//
// TotalFiles and TotalDownloads are cumulative. TotalShares is the live count
// of granted permissions: it drops on revoke and never goes below zero.
type SyncStats struct {
	TotalFiles     uint64 `json:"total_files"`
	TotalShares    uint64 `json:"total_shares"`
	TotalDownloads uint64 `json:"total_downloads"`
	ActiveUsers    uint64 `json:"active_users"`
}

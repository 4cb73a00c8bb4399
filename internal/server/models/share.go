package models

// SharePermission grants SharedWith download rights on FileID. Revocation
// flips CanDownload to false; the record itself is kept.
// PermissionID 0 means "not found".
type SharePermission struct {
	PermissionID uint64   `json:"permission_id"`
	FileID       uint64   `json:"file_id"`
	Owner        Identity `json:"owner"`
	SharedWith   Identity `json:"shared_with"`
	CanDownload  bool     `json:"can_download"`
	// ExpiryTime 0 means the permission never expires.
	ExpiryTime  uint64 `json:"expiry_time"`
	GrantedTime uint64 `json:"granted_time"`
}

func (p SharePermission) Exists() bool { return p.PermissionID != 0 }

// Active reports whether the permission allows downloading at time now.
func (p SharePermission) Active(now uint64) bool {
	if !p.Exists() || !p.CanDownload {
		return false
	}
	return p.ExpiryTime == 0 || now < p.ExpiryTime
}

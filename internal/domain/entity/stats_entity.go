package entity

// DashboardStats summarizes archive usage for administrators.
type DashboardStats struct {
	TotalUsers      int64 `json:"total_users"`
	TotalArchives   int64 `json:"total_archives"`
	TotalCategories int64 `json:"total_categories"`
	RecentUploads   int64 `json:"recent_uploads"`
	RecentAccesses  int64 `json:"recent_accesses"`
	StorageUsed     int64 `json:"storage_used"`
}

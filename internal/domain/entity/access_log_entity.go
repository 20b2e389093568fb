package entity

import "time"

type Action string

const (
	ActionView     Action = "view"
	ActionDownload Action = "download"
	ActionUpload   Action = "upload"
	ActionDelete   Action = "delete"
)

func (a Action) Valid() bool {
	switch a {
	case ActionView, ActionDownload, ActionUpload, ActionDelete:
		return true
	}
	return false
}

type AccessLog struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ArchiveID int64     `json:"archive_id"`
	Action    Action    `json:"action"`
	IPAddress *string   `json:"ip_address"`
	UserAgent *string   `json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
}

type AccessLogFilter struct {
	UserID    *int64
	ArchiveID *int64
	Action    Action
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

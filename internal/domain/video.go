package domain

import "time"

// ProcessingStatus represents the AI processing state of a catalog video.
type ProcessingStatus string

const (
	ProcessingStatusProcessing ProcessingStatus = "processing"
	ProcessingStatusCompleted  ProcessingStatus = "completed"
	ProcessingStatusFailed     ProcessingStatus = "failed"
)

// Video represents a published (or in-flight) video in the catalog.
// YouTubeID carries a unique index so the same source video cannot produce
// two live rows even if two submissions race past the pre-check.
type Video struct {
	ID                   string           `gorm:"type:text;primaryKey" json:"id"`
	YouTubeID            string           `gorm:"column:youtube_id;type:text;not null;uniqueIndex:idx_videos_youtube_id" json:"youtube_id"`
	Title                string           `gorm:"type:text;not null" json:"title"`
	Description          string           `gorm:"type:text" json:"description"`
	ThumbnailURL         string           `gorm:"type:text" json:"thumbnail_url"`
	ArchivedThumbnailKey string           `gorm:"type:text" json:"archived_thumbnail_key,omitempty"`
	ChannelName          string           `gorm:"type:text" json:"channel_name"`
	Duration             int              `json:"duration"`
	Category             string           `gorm:"type:text;index:idx_videos_category" json:"category"`
	AISummary            string           `gorm:"column:ai_summary;type:text" json:"ai_summary"`
	Highlights           StringArray      `gorm:"type:text" json:"highlights"`
	ProcessingStatus     ProcessingStatus `gorm:"type:text;index:idx_videos_processing_status;default:processing" json:"processing_status"`
	ProcessingError      string           `gorm:"type:text" json:"processing_error,omitempty"`
	ProcessedAt          *time.Time       `json:"processed_at,omitempty"`
	AdminApproved        bool             `gorm:"default:false" json:"admin_approved"`
	ViewCount            int64            `gorm:"default:0" json:"view_count"`
	PublishedAt          time.Time        `json:"published_at"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

// TableName returns the database table name for Video.
func (Video) TableName() string {
	return "videos"
}

// VideoTimestamp is one AI-detected chapter marker for a video.
type VideoTimestamp struct {
	ID          string `gorm:"type:text;primaryKey" json:"id"`
	VideoID     string `gorm:"type:text;not null;index:idx_video_timestamps_video" json:"video_id"`
	Seconds     int    `json:"seconds"`
	Title       string `gorm:"type:text;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Position    int    `json:"position"`
}

// TableName returns the database table name for VideoTimestamp.
func (VideoTimestamp) TableName() string {
	return "video_timestamps"
}

// VideoToolLink associates a video with a tool mentioned in it.
// The composite unique index plus conflict-ignore inserts keep the link
// set deduplicated even when a tool is detected twice in one video.
type VideoToolLink struct {
	ID        string    `gorm:"type:text;primaryKey" json:"id"`
	VideoID   string    `gorm:"type:text;not null;uniqueIndex:idx_video_tools_pair" json:"video_id"`
	ToolID    string    `gorm:"type:text;not null;uniqueIndex:idx_video_tools_pair" json:"tool_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for VideoToolLink.
func (VideoToolLink) TableName() string {
	return "video_tools"
}

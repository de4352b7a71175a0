package announcements

import "time"

// Announcement is a portal notice, either public or student-only.
type Announcement struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	IsPublic   bool      `json:"isPublic"`
	PostedBy   string    `json:"postedBy"`
	PostedByID string    `json:"postedById"`
	PostedAt   time.Time `json:"postedAt"`
}

package interests

import "time"

// Interest is a student's hall pass for a drive: proof they registered
// interest, shown to admins as the attendee list.
type Interest struct {
	PassID    string    `json:"passId"`
	UserID    string    `json:"userId"`
	DriveID   string    `json:"driveId"`
	UserName  string    `json:"userName"`
	StudentID string    `json:"studentId"`
	CreatedAt time.Time `json:"createdAt"`
}

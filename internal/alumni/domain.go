package alumni

import "time"

// Alumnus is a placed-student success story shown on the portal wall.
// PhotoKey is the blob storage key; PhotoURL is resolved at read time.
type Alumnus struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	CompanyName   string    `json:"companyName"`
	PlacementDate string    `json:"placementDate"`
	Package       string    `json:"package"`
	PhotoKey      string    `json:"-"`
	PhotoURL      string    `json:"photoUrl"`
	PostedBy      string    `json:"postedBy"`
	PostedByID    string    `json:"postedById"`
	PostedAt      time.Time `json:"postedAt"`
}

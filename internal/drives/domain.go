package drives

import "time"

// PackageLevel buckets a drive's compensation.
type PackageLevel string

const (
	PackageLow  PackageLevel = "LOW"
	PackageMid  PackageLevel = "MID"
	PackageHigh PackageLevel = "HIGH"
)

// Drive is a posted placement opportunity. JSON field names follow the
// frontend contract.
type Drive struct {
	ID            string       `json:"id"`
	CompanyName   string       `json:"companyName"`
	Role          string       `json:"role"`
	Description   string       `json:"description"`
	Eligibility   []string     `json:"eligibility"`
	Location      string       `json:"location"`
	Salary        *string      `json:"salary,omitempty"`
	ApplyDeadline string       `json:"applyDeadline"`
	ApplyLink     *string      `json:"applyLink,omitempty"`
	PackageLevel  PackageLevel `json:"packageLevel"`
	IsFree        bool         `json:"isFree"`
	PostedBy      string       `json:"postedBy"`
	PostedByID    string       `json:"postedById"`
	PostedAt      time.Time    `json:"postedAt"`
}

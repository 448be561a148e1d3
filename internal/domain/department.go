package domain

import "time"

// Department represents a ministry department (worship, youth, missions...).
type Department struct {
	ID          string
	Name        string
	Slug        string
	Description string
	Category    string
	LeaderID    *string
	ImageURL    *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LeaderSummary is the subset of a leader account exposed on department views.
type LeaderSummary struct {
	ID    string
	Name  string
	Email *string
}

// DepartmentWithStats decorates a department with its leader and member count
// for admin listings.
type DepartmentWithStats struct {
	Department
	Leader      *LeaderSummary
	MemberCount int
}

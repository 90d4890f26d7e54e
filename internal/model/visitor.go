package model

import "time"

// Visit records a single page view by a client.
type Visit struct {
	ID        int64     `json:"-" db:"id"`
	IPAddress string    `json:"ipAddress" db:"ip_address"`
	UserAgent *string   `json:"userAgent,omitempty" db:"user_agent"`
	Page      string    `json:"page" db:"page"`
	VisitDate time.Time `json:"visitDate" db:"visit_date"`
}

// VisitorStats summarises unique visitors for the dashboard.
type VisitorStats struct {
	TotalVisitors int `json:"totalVisitors"`
	TodayVisitors int `json:"todayVisitors"`
}

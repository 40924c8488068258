package models

import "time"

// Aggregate rows shared between the repositories and the analytics service.

type AssigneeCount struct {
	TeamMember string `gorm:"column:team_member" json:"teamMember"`
	Count      int64  `gorm:"column:count" json:"count"`
}

type MonthBucket struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type DayBucket struct {
	Date     string  `json:"date"`
	Count    int64   `json:"count"`
	AvgHours float64 `json:"avgHours"`
}

type NameCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type FeedbackAverage struct {
	Name          string  `json:"name"`
	AvgRating     float64 `json:"avgRating"`
	FeedbackCount int64   `json:"feedbackCount"`
}

// ActivityItem is one entry of the dashboard's recent-activity feed.
type ActivityItem struct {
	ClientName       string          `json:"clientName"`
	ClientID         uint            `json:"clientId"`
	InteractionType  InteractionType `json:"interactionType"`
	InteractionDate  time.Time       `json:"interactionDate"`
	InteractionNotes string          `json:"interactionNotes"`
	UserName         string          `json:"userName"`
}

type ClientStatusDistribution struct {
	Prospect int64 `json:"prospect"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}

type AttendanceStatusDistribution struct {
	Present int64 `json:"present"`
	Absent  int64 `json:"absent"`
	Leave   int64 `json:"leave"`
	HalfDay int64 `json:"halfDay"`
}

type ClientMetrics struct {
	TotalClients        int64                    `json:"totalClients"`
	StatusDistribution  ClientStatusDistribution `json:"statusDistribution"`
	ClientsByTeamMember []AssigneeCount          `json:"clientsByTeamMember"`
	ClientsOverTime     []MonthBucket            `json:"clientsOverTime"`
}

type AttendanceMetrics struct {
	AttendanceByDate   []DayBucket                  `json:"attendanceByDate"`
	StatusDistribution AttendanceStatusDistribution `json:"statusDistribution"`
}

type PerformanceMetrics struct {
	InteractionsPerTeamMember []NameCount       `json:"interactionsPerTeamMember"`
	FeedbackByTeamMember      []FeedbackAverage `json:"feedbackByTeamMember"`
}

type DashboardData struct {
	TotalClients      int64          `json:"totalClients"`
	NewClientsToday   int64          `json:"newClientsToday"`
	UpcomingFollowUps int64          `json:"upcomingFollowUps"`
	AttendanceToday   *Attendance    `json:"attendanceToday"`
	RecentActivities  []ActivityItem `json:"recentActivities"`
}

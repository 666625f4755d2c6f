package domain

import "time"

// Priority is the urgency level of a todo. Stored as text.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Valid reports whether p is one of the three known levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Domain entity: does not depend on Gin, Postgres or Redis.
// DueDate carries a calendar date only, normalized to midnight UTC.
type Todo struct {
	ID          int64
	Title       string
	Description string
	DueDate     time.Time
	Priority    Priority
	Completed   bool
}

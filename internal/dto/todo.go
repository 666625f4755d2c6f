package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateOnly parses due_date from JSON as either a date ("2006-01-02") or an
// RFC3339 datetime. Either way only the calendar date is kept: the value is
// normalized to midnight UTC. It marshals back as "2006-01-02".
type DateOnly struct{ t time.Time }

// NewDateOnly truncates t to its calendar date in UTC.
func NewDateOnly(t time.Time) DateOnly {
	return DateOnly{t: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d *DateOnly) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s := strings.TrimSpace(raw)
	if s == "" {
		return fmt.Errorf("due_date: must not be empty")
	}
	layouts := []string{
		"2006-01-02",     // date only
		time.RFC3339,     // 2006-01-02T15:04:05Z07:00
		time.RFC3339Nano, // with nanoseconds
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			// Time-of-day is discarded: keep the calendar date at midnight UTC.
			d.t = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			return nil
		}
	}
	return fmt.Errorf("due_date: use date (YYYY-MM-DD) or RFC3339 datetime")
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.t.Format("2006-01-02"))
}

// Time returns the normalized date for use in service/domain.
func (d DateOnly) Time() time.Time { return d.t }

// TodoRequest is the JSON body for POST /todo/create and PUT /todo/:id.
// The same shape serves both: a full update replaces every mutable field.
type TodoRequest struct {
	Title       string   `json:"title" binding:"required,min=1,max=255"`
	Description string   `json:"description" binding:"required,min=1,max=4000"`
	DueDate     DateOnly `json:"due_date" binding:"required"`
	Priority    string   `json:"priority" binding:"required,oneof=High Medium Low"`
	Completed   *bool    `json:"completed" binding:"required"`
}

// TodoResponse is the client-facing shape of a stored todo.
type TodoResponse struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     DateOnly `json:"due_date"`
	Priority    string   `json:"priority"`
	Completed   bool     `json:"completed"`
}

package models

import (
	"strings"
	"time"
)

// DescriptionWordLimit caps how many whitespace-delimited words a task
// description may hold after any write.
const DescriptionWordLimit = 1000

type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	Owner       string    `json:"owner"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ClampDescription silently drops every word past DescriptionWordLimit.
// Descriptions within the limit are returned untouched, original spacing
// included.
func ClampDescription(description string) string {
	words := strings.Fields(description)
	if len(words) <= DescriptionWordLimit {
		return description
	}
	return strings.Join(words[:DescriptionWordLimit], " ")
}

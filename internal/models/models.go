package models

import "time"

// TaskKind selects the placement strategy a task is eligible for.
type TaskKind string

const (
	KindFixed    TaskKind = "fixed"
	KindRoutine  TaskKind = "routine"
	KindFlexible TaskKind = "flexible"
)

// Priority is a secondary ordering signal used when kinds tie.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Task represents a single unit of work on the daily plan.
type Task struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Kind            TaskKind   `json:"kind"`
	Priority        Priority   `json:"priority"`
	DurationMinutes int64      `json:"duration_minutes"`
	StartTime       *time.Time `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	PreferredStart  *time.Time `json:"preferred_start"`
	PreferredEnd    *time.Time `json:"preferred_end"`
	Frequency       string     `json:"frequency"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// HasPreferredWindow reports whether both window bounds are present.
func (t Task) HasPreferredWindow() bool {
	return t.PreferredStart != nil && t.PreferredEnd != nil
}

// ValidTaskKinds enumerates the kinds accepted by the API.
var ValidTaskKinds = map[TaskKind]struct{}{
	KindFixed:    {},
	KindRoutine:  {},
	KindFlexible: {},
}

// ValidPriorities enumerates the priorities accepted by the API.
var ValidPriorities = map[Priority]struct{}{
	PriorityHigh:   {},
	PriorityMedium: {},
	PriorityLow:    {},
}

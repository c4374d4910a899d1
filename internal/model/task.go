package model

import "time"

// Task is a recurring chore. Recurrence holds the weekdays the task is
// active on (time.Sunday=0 through time.Saturday=6); it carries no notion
// of a specific calendar date.
type Task struct {
	ID         string   `json:"id"`
	FamilyID   string   `json:"familyId"`
	Title      string   `json:"title"`
	Points     int      `json:"points"`
	Icon       string   `json:"icon"`
	AssignedTo []string `json:"assignedTo"`
	Recurrence []int    `json:"recurrence"`
	IsUnique   bool     `json:"isUnique,omitempty"` // first completer locks the day for all assignees
}

// AssignedToUser reports whether the task is assigned to the given user.
func (t *Task) AssignedToUser(userID string) bool {
	for _, id := range t.AssignedTo {
		if id == userID {
			return true
		}
	}
	return false
}

// ActiveOn reports whether the task recurs on the given weekday.
func (t *Task) ActiveOn(day time.Weekday) bool {
	for _, d := range t.Recurrence {
		if d == int(day) {
			return true
		}
	}
	return false
}

// TaskCompletion records one fact: this user finished this task on this
// date. At most one completion exists per (TaskID, UserID, Date).
type TaskCompletion struct {
	ID        string `json:"id"`
	TaskID    string `json:"taskId"`
	UserID    string `json:"userId"`
	Date      string `json:"date"` // YYYY-MM-DD
	Timestamp int64  `json:"timestamp"`
	Approved  bool   `json:"approved"`
}

// ExtraPointEntry is an append-only ledger entry for a manual point
// adjustment. Points may be negative.
type ExtraPointEntry struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Points    int    `json:"points"`
	Reason    string `json:"reason"`
	Timestamp int64  `json:"timestamp"`
}

// Package task derives the per-user, per-day state of a chore from the
// completion ledger.
package task

import (
	"time"

	"github.com/barrero/supertareas/internal/model"
)

type State string

const (
	StatePending          State = "pending"
	StateCompletedByMe    State = "completed_by_me"
	StateCompletedByOther State = "completed_by_other"
	StateNotDue           State = "not_due"
)

// Status is the resolved state of one task for one user on one date.
// CompletedBy is set only for StateCompletedByOther.
type Status struct {
	State       State  `json:"status"`
	CompletedBy string `json:"completedBy,omitempty"`
}

// For resolves the task's state for userID on date (YYYY-MM-DD), whose
// weekday must be supplied by the caller (the document has no clock).
//
// A unique task completed by any assignee locks the day: everyone else
// sees completed_by_other with the completer's ID.
func For(doc *model.Document, t *model.Task, userID, date string, weekday int) Status {
	if !t.ActiveOn(time.Weekday(weekday)) {
		return Status{State: StateNotDue}
	}

	for _, c := range doc.Completions {
		if c.TaskID == t.ID && c.UserID == userID && c.Date == date {
			return Status{State: StateCompletedByMe}
		}
	}

	if t.IsUnique {
		for _, c := range doc.Completions {
			if c.TaskID == t.ID && c.Date == date {
				return Status{State: StateCompletedByOther, CompletedBy: c.UserID}
			}
		}
	}

	return Status{State: StatePending}
}

// DueFor lists the tasks assigned to userID that recur on the given
// weekday.
func DueFor(doc *model.Document, userID string, weekday int) []model.Task {
	var due []model.Task
	for _, t := range doc.Tasks {
		if t.AssignedToUser(userID) && t.ActiveOn(time.Weekday(weekday)) {
			due = append(due, t)
		}
	}
	return due
}

// Package task holds the in-memory task engine: the status transition
// rules, the overdue reconciliation predicate, client-side filtering
// and the derived aggregates. Everything here is pure; network effects
// live in internal/api and the views.
package task

import (
	"time"

	"github.com/taskdeck/taskdeck/internal/models"
)

// Action is a user-initiated status change request.
type Action int

const (
	ActionNone Action = iota
	ActionComplete
	ActionReopen
)

// Next is the single transition function for task status, shared by
// the background reconciliation path and the user-action path.
//
// Rules:
//   - once overdue, user actions are ignored; the server stays the
//     authority until the next reconciliation pass
//   - an explicit action on a non-overdue task wins, even if the due
//     date has already passed (the reconciliation pass will reclaim it
//     if it lands on pending again)
//   - with no action, a past due date derives overdue unless the task
//     is completed or has no due date
func Next(current models.Status, dueDate string, today time.Time, action Action) models.Status {
	if current == models.StatusOverdue {
		return current
	}
	switch action {
	case ActionComplete:
		return models.StatusCompleted
	case ActionReopen:
		return models.StatusPending
	}
	if current != models.StatusCompleted && pastDue(dueDate, today) {
		return models.StatusOverdue
	}
	return current
}

// Today truncates a wall-clock instant to midnight in its location.
// All due date comparisons are date-only.
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

func pastDue(dueDate string, today time.Time) bool {
	due, ok := models.Task{DueDate: dueDate}.DueOn()
	if !ok {
		return false
	}
	return due.Before(Today(today))
}

// NeedsReconcile reports whether a task should be pushed to overdue:
// due date present and past, and the task is neither completed nor
// already overdue. A second pass over an already-reconciled list is a
// no-op.
func NeedsReconcile(t models.Task, today time.Time) bool {
	return t.Status != models.StatusCompleted &&
		t.Status != models.StatusOverdue &&
		pastDue(t.DueDate, today)
}

// OverdueCandidates returns the tasks a reconciliation pass must
// update, preserving list order.
func OverdueCandidates(tasks []models.Task, today time.Time) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if NeedsReconcile(t, today) {
			out = append(out, t)
		}
	}
	return out
}

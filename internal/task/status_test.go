package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taskdeck/taskdeck/internal/models"
)

func date(s string) time.Time {
	t, err := time.Parse(models.DueDateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNext_PastDuePendingBecomesOverdue(t *testing.T) {
	got := Next(models.StatusPending, "2020-01-01", date("2024-01-01"), ActionNone)
	assert.Equal(t, models.StatusOverdue, got)
}

func TestNext_CompletedNeverReclassified(t *testing.T) {
	got := Next(models.StatusCompleted, "2020-01-01", date("2024-01-01"), ActionNone)
	assert.Equal(t, models.StatusCompleted, got)
}

func TestNext_NoDueDateNeverOverdue(t *testing.T) {
	got := Next(models.StatusPending, "", date("2024-01-01"), ActionNone)
	assert.Equal(t, models.StatusPending, got)
}

func TestNext_DueTodayIsNotOverdue(t *testing.T) {
	got := Next(models.StatusPending, "2024-01-01", date("2024-01-01"), ActionNone)
	assert.Equal(t, models.StatusPending, got)
}

func TestNext_OverdueIgnoresUserActions(t *testing.T) {
	assert.Equal(t, models.StatusOverdue, Next(models.StatusOverdue, "2020-01-01", date("2024-01-01"), ActionComplete))
	assert.Equal(t, models.StatusOverdue, Next(models.StatusOverdue, "2020-01-01", date("2024-01-01"), ActionReopen))
}

func TestNext_UserActionWinsBeforeReconciliation(t *testing.T) {
	// Past due but not yet reconciled: the complete button still works.
	got := Next(models.StatusPending, "2020-01-01", date("2024-01-01"), ActionComplete)
	assert.Equal(t, models.StatusCompleted, got)
}

func TestNext_ReopenCompleted(t *testing.T) {
	got := Next(models.StatusCompleted, "", date("2024-01-01"), ActionReopen)
	assert.Equal(t, models.StatusPending, got)
}

func TestToday_TruncatesToMidnight(t *testing.T) {
	now := time.Date(2024, 6, 15, 17, 42, 3, 12345, time.UTC)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), Today(now))
}

func TestOverdueCandidates(t *testing.T) {
	today := date("2024-01-01")
	tasks := []models.Task{
		{ID: 1, Title: "past pending", DueDate: "2020-01-01", Status: models.StatusPending},
		{ID: 2, Title: "past completed", DueDate: "2020-01-01", Status: models.StatusCompleted},
		{ID: 3, Title: "already overdue", DueDate: "2020-01-01", Status: models.StatusOverdue},
		{ID: 4, Title: "no due date", Status: models.StatusPending},
		{ID: 5, Title: "future", DueDate: "2030-01-01", Status: models.StatusPending},
		{ID: 6, Title: "another past", DueDate: "2023-12-31", Status: models.StatusPending},
	}

	got := OverdueCandidates(tasks, today)

	assert.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(6), got[1].ID)
}

func TestOverdueCandidates_MidDayClockStillDateOnly(t *testing.T) {
	// Due yesterday, checked at 23:59: still overdue. Due today,
	// checked at 23:59: not overdue.
	now := time.Date(2024, 1, 2, 23, 59, 0, 0, time.UTC)
	tasks := []models.Task{
		{ID: 1, DueDate: "2024-01-01", Status: models.StatusPending},
		{ID: 2, DueDate: "2024-01-02", Status: models.StatusPending},
	}

	got := OverdueCandidates(tasks, now)

	assert.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestReconcile_Idempotent(t *testing.T) {
	today := date("2024-01-01")
	tasks := []models.Task{
		{ID: 1, DueDate: "2020-01-01", Status: models.StatusPending},
		{ID: 2, DueDate: "2020-01-01", Status: models.StatusCompleted},
	}

	// First pass flips candidates to overdue.
	for _, c := range OverdueCandidates(tasks, today) {
		for i := range tasks {
			if tasks[i].ID == c.ID {
				tasks[i].Status = Next(tasks[i].Status, tasks[i].DueDate, today, ActionNone)
			}
		}
	}
	assert.Equal(t, models.StatusOverdue, tasks[0].Status)
	assert.Equal(t, models.StatusCompleted, tasks[1].Status)

	// Second pass with no elapsed time finds nothing to do.
	assert.Empty(t, OverdueCandidates(tasks, today))
}

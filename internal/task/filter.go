package task

import (
	"strings"

	"github.com/taskdeck/taskdeck/internal/models"
)

// Filter is the set of independently settable criteria applied to the
// task list. Nil pointers and the empty search string mean "no
// filter"; active criteria combine as a conjunction.
type Filter struct {
	Status   *models.Status
	Category *string
	DueDate  *string // exact YYYY-MM-DD match
	Search   string
}

// Active reports whether any criterion is set.
func (f Filter) Active() bool {
	return f.Status != nil || f.Category != nil || f.DueDate != nil || f.Search != ""
}

// Clear resets every criterion in a single state change.
func (f *Filter) Clear() {
	*f = Filter{}
}

// Match reports whether a task satisfies every active criterion.
// Search is a case-insensitive substring match against the title or
// the description.
func (f Filter) Match(t models.Task) bool {
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.Category != nil && t.Category != *f.Category {
		return false
	}
	if f.DueDate != nil && t.DueDate != *f.DueDate {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Title), q) &&
			!strings.Contains(strings.ToLower(t.Description), q) {
			return false
		}
	}
	return true
}

// Apply derives the filtered view, preserving the relative order of
// the source list. The input slice is never mutated.
func (f Filter) Apply(tasks []models.Task) []models.Task {
	if !f.Active() {
		return tasks
	}
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

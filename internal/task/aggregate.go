package task

import "github.com/taskdeck/taskdeck/internal/models"

// Summary holds the status counts over the full, unfiltered task list.
type Summary struct {
	Total     int
	Pending   int
	Completed int
	Overdue   int
}

// Summarize counts tasks by status. Active filters never affect the
// summary; callers pass the full list.
func Summarize(tasks []models.Task) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case models.StatusPending:
			s.Pending++
		case models.StatusCompleted:
			s.Completed++
		case models.StatusOverdue:
			s.Overdue++
		}
	}
	return s
}

// Categories returns the distinct non-empty category labels observed
// across all loaded tasks, in first-observed order. This is the
// dynamic vocabulary offered by the category filter.
func Categories(tasks []models.Task) []string {
	seen := make(map[string]bool, len(tasks))
	var out []string
	for _, t := range tasks {
		if t.Category == "" || seen[t.Category] {
			continue
		}
		seen[t.Category] = true
		out = append(out, t.Category)
	}
	return out
}

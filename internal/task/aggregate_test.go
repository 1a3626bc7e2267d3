package task

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskdeck/taskdeck/internal/models"
)

func TestSummarize_CountsAddUp(t *testing.T) {
	tasks := sampleTasks()

	s := Summarize(tasks)

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Pending)
	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 1, s.Overdue)
	assert.Equal(t, s.Total, s.Pending+s.Completed+s.Overdue)
}

func TestSummarize_UnaffectedByFilters(t *testing.T) {
	tasks := sampleTasks()
	f := Filter{Status: statusPtr(models.StatusPending)}

	// Aggregates come from the full list regardless of the active view.
	_ = f.Apply(tasks)

	assert.Equal(t, Summarize(tasks), Summarize(tasks))
	assert.Equal(t, 4, Summarize(tasks).Total)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestCategories_DistinctFirstObservedOrder(t *testing.T) {
	got := Categories(sampleTasks())

	assert.Equal(t, []string{"work", "home"}, got)
}

func TestCategories_SkipsEmpty(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, Category: ""},
		{ID: 2, Category: "errands"},
		{ID: 3, Category: ""},
	}

	assert.Equal(t, []string{"errands"}, Categories(tasks))
}

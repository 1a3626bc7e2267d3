package views

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/task"
	"github.com/taskdeck/taskdeck/internal/ui/keys"
	"github.com/taskdeck/taskdeck/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// FocusArea represents which part of the UI has focus
type FocusArea int

const (
	FocusSearchInput FocusArea = iota
	FocusDueFilter
	FocusTaskList
)

// RequestLogout signals the app to end the session
type RequestLogout struct{}

// TaskListView shows the authenticated user's tasks
type TaskListView struct {
	client *api.Client
	log    *slog.Logger
	user   *models.User
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	// Data
	tasks    []models.Task
	filtered []models.Task
	filter   task.Filter

	// UI state
	focus      FocusArea
	cursor     int
	scrollY    int
	loading    bool
	spinner    spinner.Model
	statusLine string

	searchInput textinput.Model
	dueInput    textinput.Model

	// Filter dropdown state
	statusDropdownOpen   bool
	statusCursor         int
	categoryDropdownOpen bool
	categoryCursor       int

	// Task creation/editing
	editing      bool
	editingNew   bool
	editTitle    textinput.Model
	editDesc     textarea.Model
	editDue      textinput.Model
	editCategory textinput.Model
	editFocusIdx int // 0=title, 1=desc, 2=due, 3=category, 4=save
	editErr      string
	editTaskID   int64

	// Delete confirmation
	confirmingDelete bool
	deleteTargetID   int64
	deleteTargetName string

	// Reconciliation state. A task in flight is not considered again
	// until its own update resolves.
	reconcileInflight map[int64]bool
	reconcileInterval time.Duration
	active            bool

	now func() time.Time
}

// NewTaskListView creates the task list view
func NewTaskListView(client *api.Client, user *models.User, log *slog.Logger, reconcileInterval time.Duration) *TaskListView {
	s := styles.NewStyles()

	search := textinput.New()
	search.Placeholder = "Search tasks..."
	search.CharLimit = 100

	due := textinput.New()
	due.Placeholder = "YYYY-MM-DD"
	due.CharLimit = 10

	editTitle := textinput.New()
	editTitle.Placeholder = "Task title"
	editTitle.CharLimit = 200

	editDesc := textarea.New()
	editDesc.Placeholder = "Description"
	editDesc.CharLimit = 1000
	editDesc.SetWidth(50)
	editDesc.SetHeight(3)
	editDesc.ShowLineNumbers = false

	editDue := textinput.New()
	editDue.Placeholder = "YYYY-MM-DD"
	editDue.CharLimit = 10

	editCategory := textinput.New()
	editCategory.Placeholder = "Category (optional)"
	editCategory.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Current.Primary)

	return &TaskListView{
		client:            client,
		log:               log,
		user:              user,
		styles:            s,
		keys:              keys.DefaultKeyMap(),
		focus:             FocusTaskList,
		spinner:           sp,
		searchInput:       search,
		dueInput:          due,
		editTitle:         editTitle,
		editDesc:          editDesc,
		editDue:           editDue,
		editCategory:      editCategory,
		reconcileInflight: make(map[int64]bool),
		reconcileInterval: reconcileInterval,
		active:            true,
		now:               time.Now,
	}
}

// Init initializes the view
func (v *TaskListView) Init() tea.Cmd {
	v.loading = true
	return tea.Batch(v.spinner.Tick, v.loadTasks, v.scheduleReconcile())
}

type tasksLoadedMsg struct {
	tasks []models.Task
}

type loadFailedMsg struct{ err error }

type taskSavedMsg struct {
	task    *models.Task
	created bool
}

type saveFailedMsg struct{ err error }

type taskDeletedMsg struct{ id int64 }

type deleteFailedMsg struct{ err error }

type statusChangedMsg struct{ task *models.Task }

type reconciledMsg struct{ task *models.Task }

type reconcileFailedMsg struct {
	id  int64
	err error
}

// reconcileTickMsg carries the view that armed it; a tick from a view
// torn down on logout must not re-arm the chain on its successor.
type reconcileTickMsg struct{ owner *TaskListView }

func (v *TaskListView) loadTasks() tea.Msg {
	tasks, err := v.client.ListTasks(context.Background())
	if err != nil {
		return loadFailedMsg{err: err}
	}
	return tasksLoadedMsg{tasks: tasks}
}

func (v *TaskListView) scheduleReconcile() tea.Cmd {
	return tea.Tick(v.reconcileInterval, func(time.Time) tea.Msg {
		return reconcileTickMsg{owner: v}
	})
}

// reconcilePass issues one independent update per overdue candidate.
// Candidates already in flight are skipped until their update
// resolves.
func (v *TaskListView) reconcilePass() tea.Cmd {
	today := v.now()
	var cmds []tea.Cmd
	for _, candidate := range task.OverdueCandidates(v.tasks, today) {
		if v.reconcileInflight[candidate.ID] {
			continue
		}
		v.reconcileInflight[candidate.ID] = true
		t := candidate
		cmds = append(cmds, func() tea.Msg {
			fields := t.Fields()
			fields.Status = task.Next(t.Status, t.DueDate, today, task.ActionNone)
			updated, err := v.client.UpdateTask(context.Background(), t.ID, fields)
			if err != nil {
				return reconcileFailedMsg{id: t.ID, err: err}
			}
			return reconciledMsg{task: updated}
		})
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// applyFilters recomputes the filtered view from the full list
func (v *TaskListView) applyFilters() {
	v.filtered = v.filter.Apply(v.tasks)
	if v.cursor >= len(v.filtered) {
		v.cursor = max(0, len(v.filtered)-1)
	}
}

// replaceTask swaps in the server representation of a task
func (v *TaskListView) replaceTask(updated *models.Task) {
	for i := range v.tasks {
		if v.tasks[i].ID == updated.ID {
			v.tasks[i] = *updated
			break
		}
	}
	v.applyFilters()
}

// Update handles messages
func (v *TaskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(v.width)
		v.editDesc.SetWidth(clamp(contentWidth-10, 20, 50))
		return v, nil

	case spinner.TickMsg:
		if !v.loading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tasksLoadedMsg:
		v.loading = false
		v.tasks = msg.tasks
		v.applyFilters()
		// The category vocabulary may have shrunk under an open dropdown.
		if v.categoryDropdownOpen {
			v.categoryCursor = clamp(v.categoryCursor, 0, len(task.Categories(v.tasks)))
		}
		// A freshly populated list triggers a reconciliation pass to
		// catch tasks that went overdue while we weren't looking.
		return v, v.reconcilePass()

	case loadFailedMsg:
		v.loading = false
		v.statusLine = "Could not load tasks: " + shortErr(msg.err)
		return v, nil

	case taskSavedMsg:
		if msg.created {
			v.tasks = append(v.tasks, *msg.task)
			v.applyFilters()
		} else {
			v.replaceTask(msg.task)
		}
		v.editing = false
		return v, nil

	case saveFailedMsg:
		v.editErr = shortErr(msg.err)
		return v, nil

	case taskDeletedMsg:
		kept := v.tasks[:0]
		for _, t := range v.tasks {
			if t.ID != msg.id {
				kept = append(kept, t)
			}
		}
		v.tasks = kept
		v.applyFilters()
		return v, nil

	case deleteFailedMsg:
		v.statusLine = "Delete failed: " + shortErr(msg.err)
		return v, nil

	case statusLineMsg:
		v.statusLine = msg.text
		return v, nil

	case statusChangedMsg:
		v.replaceTask(msg.task)
		return v, nil

	case reconciledMsg:
		delete(v.reconcileInflight, msg.task.ID)
		v.replaceTask(msg.task)
		return v, nil

	case reconcileFailedMsg:
		// Best effort: log and leave the local status unchanged until
		// the next pass.
		delete(v.reconcileInflight, msg.id)
		v.log.Warn("overdue reconciliation failed", "task_id", msg.id, "error", msg.err)
		return v, nil

	case reconcileTickMsg:
		if !v.active || msg.owner != v {
			return v, nil
		}
		return v, tea.Batch(v.reconcilePass(), v.scheduleReconcile())

	case tea.KeyMsg:
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.editing {
			return v.updateEditing(msg)
		}
		if v.statusDropdownOpen {
			return v.updateStatusDropdown(msg)
		}
		if v.categoryDropdownOpen {
			return v.updateCategoryDropdown(msg)
		}
		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *TaskListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Typing into the search box filters as you type
	if v.focus == FocusSearchInput {
		switch {
		case key.Matches(msg, v.keys.Back), key.Matches(msg, v.keys.Enter):
			v.searchInput.Blur()
			v.focus = FocusTaskList
			return v, nil
		default:
			var cmd tea.Cmd
			v.searchInput, cmd = v.searchInput.Update(msg)
			v.filter.Search = v.searchInput.Value()
			v.applyFilters()
			return v, cmd
		}
	}

	// Typing into the due date filter applies on enter
	if v.focus == FocusDueFilter {
		switch {
		case key.Matches(msg, v.keys.Back):
			v.dueInput.Blur()
			v.focus = FocusTaskList
			return v, nil
		case key.Matches(msg, v.keys.Enter):
			return v.applyDueFilter()
		default:
			var cmd tea.Cmd
			v.dueInput, cmd = v.dueInput.Update(msg)
			return v, cmd
		}
	}

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Logout):
		v.active = false
		return v, func() tea.Msg { return RequestLogout{} }

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.filtered)-1 {
			v.cursor++
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Search):
		v.focus = FocusSearchInput
		v.searchInput.Focus()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Filter):
		v.statusDropdownOpen = true
		v.statusCursor = 0
		return v, nil

	case key.Matches(msg, v.keys.Category):
		v.categoryDropdownOpen = true
		v.categoryCursor = 0
		return v, nil

	case key.Matches(msg, v.keys.DueDate):
		v.focus = FocusDueFilter
		v.dueInput.Focus()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.ClearFilters):
		// One reset, one recomputation: no intermediate views.
		v.filter.Clear()
		v.searchInput.Reset()
		v.dueInput.Reset()
		v.applyFilters()
		return v, nil

	case key.Matches(msg, v.keys.New):
		v.startNewTask()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Edit):
		if t, ok := v.selected(); ok {
			v.startEditTask(t)
			return v, textinput.Blink
		}
		return v, nil

	case key.Matches(msg, v.keys.Delete):
		if t, ok := v.selected(); ok {
			v.confirmingDelete = true
			v.deleteTargetID = t.ID
			v.deleteTargetName = t.Title
		}
		return v, nil

	case key.Matches(msg, v.keys.Complete):
		return v, v.changeStatus(task.ActionComplete)

	case key.Matches(msg, v.keys.Reopen):
		return v, v.changeStatus(task.ActionReopen)

	case key.Matches(msg, v.keys.Refresh):
		v.loading = true
		v.statusLine = ""
		return v, tea.Batch(v.spinner.Tick, v.loadTasks)
	}

	return v, nil
}

func (v *TaskListView) selected() (models.Task, bool) {
	if len(v.filtered) == 0 || v.cursor >= len(v.filtered) {
		return models.Task{}, false
	}
	return v.filtered[v.cursor], true
}

// changeStatus routes a user action through the shared transition
// rules. Overdue tasks have no user-facing status actions.
func (v *TaskListView) changeStatus(action task.Action) tea.Cmd {
	t, ok := v.selected()
	if !ok || t.Status == models.StatusOverdue {
		return nil
	}
	next := task.Next(t.Status, t.DueDate, v.now(), action)
	if next == t.Status {
		return nil
	}
	fields := t.Fields()
	fields.Status = next
	return func() tea.Msg {
		updated, err := v.client.UpdateTask(context.Background(), t.ID, fields)
		if err != nil {
			return statusLineMsg{text: "Status change failed: " + shortErr(err)}
		}
		return statusChangedMsg{task: updated}
	}
}

// statusLineMsg surfaces a failed user action on the status line
type statusLineMsg struct{ text string }

func (v *TaskListView) applyDueFilter() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(v.dueInput.Value())
	v.dueInput.Blur()
	v.focus = FocusTaskList
	if raw == "" {
		v.filter.DueDate = nil
		v.applyFilters()
		return v, nil
	}
	if _, err := time.Parse(models.DueDateLayout, raw); err != nil {
		v.statusLine = "Invalid date, use YYYY-MM-DD"
		return v, nil
	}
	v.filter.DueDate = &raw
	v.applyFilters()
	return v, nil
}

func (v *TaskListView) updateStatusDropdown(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	options := statusOptions()
	switch {
	case key.Matches(msg, v.keys.Back):
		v.statusDropdownOpen = false
		return v, nil

	case key.Matches(msg, v.keys.Up):
		if v.statusCursor > 0 {
			v.statusCursor--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.statusCursor < len(options) {
			v.statusCursor++
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.statusCursor == 0 {
			v.filter.Status = nil
		} else {
			status := options[v.statusCursor-1]
			v.filter.Status = &status
		}
		v.statusDropdownOpen = false
		v.applyFilters()
		return v, nil
	}
	return v, nil
}

func statusOptions() []models.Status {
	return []models.Status{models.StatusPending, models.StatusCompleted, models.StatusOverdue}
}

func (v *TaskListView) updateCategoryDropdown(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	categories := task.Categories(v.tasks)
	switch {
	case key.Matches(msg, v.keys.Back):
		v.categoryDropdownOpen = false
		return v, nil

	case key.Matches(msg, v.keys.Up):
		if v.categoryCursor > 0 {
			v.categoryCursor--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.categoryCursor < len(categories) {
			v.categoryCursor++
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		// The list backing the dropdown can change while it is open, so
		// never trust a cursor position from a previous vocabulary.
		v.categoryCursor = clamp(v.categoryCursor, 0, len(categories))
		if v.categoryCursor == 0 {
			v.filter.Category = nil
		} else {
			category := categories[v.categoryCursor-1]
			v.filter.Category = &category
		}
		v.categoryDropdownOpen = false
		v.applyFilters()
		return v, nil
	}
	return v, nil
}

func (v *TaskListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		id := v.deleteTargetID
		return v, func() tea.Msg {
			if err := v.client.DeleteTask(context.Background(), id); err != nil {
				return deleteFailedMsg{err: err}
			}
			return taskDeletedMsg{id: id}
		}
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *TaskListView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.editing = false
		return v, nil

	case msg.String() == "ctrl+s":
		return v, v.saveTask()

	case key.Matches(msg, v.keys.Tab):
		v.editFocusIdx = (v.editFocusIdx + 1) % 5 // title, desc, due, category, save
		v.updateEditFocus()
		return v, nil

	case msg.String() == "shift+tab":
		v.editFocusIdx = (v.editFocusIdx + 4) % 5
		v.updateEditFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		// Enter on single-line fields advances; on save it saves. The
		// description textarea keeps enter for newlines.
		switch v.editFocusIdx {
		case 0, 2, 3:
			v.editFocusIdx++
			v.updateEditFocus()
			return v, nil
		case 4:
			return v, v.saveTask()
		}
	}

	var cmd tea.Cmd
	switch v.editFocusIdx {
	case 0:
		v.editTitle, cmd = v.editTitle.Update(msg)
	case 1:
		v.editDesc, cmd = v.editDesc.Update(msg)
	case 2:
		v.editDue, cmd = v.editDue.Update(msg)
	case 3:
		v.editCategory, cmd = v.editCategory.Update(msg)
	}
	return v, cmd
}

func (v *TaskListView) ensureVisible() {
	availableHeight := v.height - 14
	if availableHeight < 2 {
		availableHeight = 2
	}
	visibleItems := availableHeight / 2
	if visibleItems < 1 {
		visibleItems = 1
	}

	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	} else if v.cursor >= v.scrollY+visibleItems {
		v.scrollY = v.cursor - visibleItems + 1
	}
}

func (v *TaskListView) startNewTask() {
	v.editing = true
	v.editingNew = true
	v.editFocusIdx = 0
	v.editErr = ""
	v.editTaskID = 0
	v.editTitle.Reset()
	v.editDesc.Reset()
	v.editDue.Reset()
	v.editCategory.Reset()
	v.updateEditFocus()
}

func (v *TaskListView) startEditTask(t models.Task) {
	v.editing = true
	v.editingNew = false
	v.editFocusIdx = 0
	v.editErr = ""
	v.editTaskID = t.ID
	v.editTitle.SetValue(t.Title)
	v.editDesc.SetValue(t.Description)
	v.editDue.SetValue(t.DueDate)
	v.editCategory.SetValue(t.Category)
	v.updateEditFocus()
}

func (v *TaskListView) updateEditFocus() {
	v.editTitle.Blur()
	v.editDesc.Blur()
	v.editDue.Blur()
	v.editCategory.Blur()

	switch v.editFocusIdx {
	case 0:
		v.editTitle.Focus()
	case 1:
		v.editDesc.Focus()
	case 2:
		v.editDue.Focus()
	case 3:
		v.editCategory.Focus()
	}
}

func (v *TaskListView) saveTask() tea.Cmd {
	title := strings.TrimSpace(v.editTitle.Value())
	if title == "" {
		v.editErr = "Title is required."
		return nil
	}
	due := strings.TrimSpace(v.editDue.Value())
	if due != "" {
		if _, err := time.Parse(models.DueDateLayout, due); err != nil {
			v.editErr = "Due date must be YYYY-MM-DD."
			return nil
		}
	}

	fields := models.TaskFields{
		Title:       title,
		Description: strings.TrimSpace(v.editDesc.Value()),
		DueDate:     due,
		Category:    strings.TrimSpace(v.editCategory.Value()),
	}

	if v.editingNew {
		return func() tea.Msg {
			created, err := v.client.CreateTask(context.Background(), fields)
			if err != nil {
				return saveFailedMsg{err: err}
			}
			return taskSavedMsg{task: created, created: true}
		}
	}

	// Full-record replace: status rides along unchanged.
	id := v.editTaskID
	for _, t := range v.tasks {
		if t.ID == id {
			fields.Status = t.Status
			break
		}
	}
	return func() tea.Msg {
		updated, err := v.client.UpdateTask(context.Background(), id, fields)
		if err != nil {
			return saveFailedMsg{err: err}
		}
		return taskSavedMsg{task: updated}
	}
}

func shortErr(err error) string {
	var verr *api.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	s := err.Error()
	if len(s) > 80 {
		s = s[:77] + "..."
	}
	return s
}

// View renders the view
func (v *TaskListView) View() string {
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}
	if v.editing {
		return v.renderEditForm()
	}

	var b strings.Builder

	b.WriteString(v.renderHeader())
	b.WriteString("\n")
	b.WriteString(v.renderSummary())
	b.WriteString("\n\n")
	b.WriteString(v.renderTaskList())
	b.WriteString("\n")
	b.WriteString(v.renderStatusLine())
	b.WriteString(v.renderHelp())

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *TaskListView) renderHeader() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	greeting := "My Tasks"
	if v.user != nil {
		greeting = "My Tasks — " + v.user.Username
	}
	title := s.Title.Render(greeting)

	searchStyle := s.Input
	if v.focus == FocusSearchInput {
		searchStyle = s.InputFocused
	}
	searchBox := searchStyle.Width(clamp(contentWidth-8, 10, 30)).Render(v.searchInput.View())

	statusLabel := "Status: All"
	if v.filter.Status != nil {
		statusLabel = "Status: " + string(*v.filter.Status)
	}
	statusBtn := s.Button.Render(statusLabel + " ▼")

	categoryLabel := "Category: All"
	if v.filter.Category != nil {
		categoryLabel = "Category: " + *v.filter.Category
	}
	categoryBtn := s.Button.Render(categoryLabel + " ▼")

	dueStyle := s.Input
	if v.focus == FocusDueFilter {
		dueStyle = s.InputFocused
	}
	dueBox := dueStyle.Width(14).Render(v.dueInput.View())

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		searchBox, " ", statusBtn, " ", categoryBtn, " ", dueBox,
	)

	dropdown := ""
	if v.statusDropdownOpen {
		dropdown = "\n" + v.renderStatusDropdown()
	} else if v.categoryDropdownOpen {
		dropdown = "\n" + v.renderCategoryDropdown()
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, header+dropdown)
}

// renderSummary shows the aggregate counts over the full task list,
// never the filtered view.
func (v *TaskListView) renderSummary() string {
	s := v.styles
	sum := task.Summarize(v.tasks)

	parts := []string{
		s.SummaryCount.Render(fmt.Sprintf("%d", sum.Total)) + " total",
		s.StatusPending.Render(fmt.Sprintf("%d", sum.Pending)) + " pending",
		s.StatusCompleted.Render(fmt.Sprintf("%d", sum.Completed)) + " completed",
		s.StatusOverdue.Render(fmt.Sprintf("%d", sum.Overdue)) + " overdue",
	}
	line := strings.Join(parts, "  •  ")
	if v.filter.Active() {
		line += s.TitleMuted.Render(fmt.Sprintf("   (%d shown)", len(v.filtered)))
	}
	return s.Summary.Render(line)
}

func (v *TaskListView) renderStatusDropdown() string {
	s := v.styles
	var items []string

	noneStyle := s.ListItem
	if v.statusCursor == 0 {
		noneStyle = s.ListSelected
	}
	items = append(items, noneStyle.Render("All"))

	for i, status := range statusOptions() {
		itemStyle := s.ListItem
		if v.statusCursor == i+1 {
			itemStyle = s.ListSelected
		}
		items = append(items, itemStyle.Render(s.StatusStyle(status).Render("●")+" "+string(status)))
	}

	return s.FilterBar.Render(lipgloss.JoinVertical(lipgloss.Left, items...))
}

func (v *TaskListView) renderCategoryDropdown() string {
	s := v.styles
	categories := task.Categories(v.tasks)
	var items []string

	noneStyle := s.ListItem
	if v.categoryCursor == 0 {
		noneStyle = s.ListSelected
	}
	items = append(items, noneStyle.Render("All"))

	if len(categories) == 0 {
		items = append(items, s.TitleMuted.Render("no categories yet"))
	}
	for i, category := range categories {
		itemStyle := s.ListItem
		if v.categoryCursor == i+1 {
			itemStyle = s.ListSelected
		}
		items = append(items, itemStyle.Render(category))
	}

	return s.FilterBar.Render(lipgloss.JoinVertical(lipgloss.Left, items...))
}

func (v *TaskListView) renderTaskList() string {
	s := v.styles

	if v.loading {
		return v.spinner.View() + " " + s.TitleMuted.Render("Loading tasks...")
	}
	if len(v.filtered) == 0 {
		if v.filter.Active() {
			return s.TitleMuted.Render("No tasks match the current filters. Press 'x' to clear.")
		}
		return s.TitleMuted.Render("No tasks. Press 'n' to create one.")
	}

	// Each task item is 1 line + 1 margin = 2 lines
	availableHeight := v.height - 14
	if availableHeight < 2 {
		availableHeight = 2
	}
	visibleItems := availableHeight / 2
	if visibleItems < 1 {
		visibleItems = 1
	}

	var items []string
	endIdx := min(v.scrollY+visibleItems, len(v.filtered))

	for i := v.scrollY; i < endIdx; i++ {
		items = append(items, v.renderTaskItem(v.filtered[i], i == v.cursor && v.focus == FocusTaskList))
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (v *TaskListView) renderTaskItem(t models.Task, selected bool) string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	width := max(contentWidth-4, 20)

	badge := s.StatusStyle(t.Status).Render("[" + string(t.Status) + "]")

	line := badge + " " + t.Title
	if t.Category != "" {
		line += " " + s.TitleMuted.Render("("+t.Category+")")
	}
	if t.DueDate != "" {
		line += " " + s.TitleMuted.Render("due "+t.DueDate)
	}

	var detail string
	if t.Description != "" {
		detail = t.Description
	} else {
		detail = s.TitleMuted.Render("no description")
	}

	var titleStyle, detailStyle lipgloss.Style
	if selected {
		titleStyle = s.ListSelected.Width(width)
		detailStyle = s.ListSelected.Width(width)
	} else {
		titleStyle = s.ListItem.Width(width)
		detailStyle = s.ListItem.Width(width)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(line),
		detailStyle.Render(detail),
	) + "\n"
}

func (v *TaskListView) renderEditForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	formTitle := "New Task"
	if !v.editingNew {
		formTitle = "Edit Task"
	}

	titleStyle := s.Input
	descStyle := s.Input
	dueStyle := s.Input
	categoryStyle := s.Input
	btnStyle := s.Button

	switch v.editFocusIdx {
	case 0:
		titleStyle = s.InputFocused
	case 1:
		descStyle = s.InputFocused
	case 2:
		dueStyle = s.InputFocused
	case 3:
		categoryStyle = s.InputFocused
	case 4:
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 50)

	rows := []string{
		s.Title.Render(formTitle),
		"",
		"Title:",
		titleStyle.Width(inputWidth).Render(v.editTitle.View()),
		"",
		"Description:",
		descStyle.Render(v.editDesc.View()),
		"",
		"Due date:",
		dueStyle.Width(14).Render(v.editDue.View()),
		"",
		"Category:",
		categoryStyle.Width(inputWidth).Render(v.editCategory.View()),
		"",
		btnStyle.Render(" Save "),
	}
	if v.editErr != "" {
		rows = append(rows, "", s.ErrorText.Render(v.editErr))
	}
	rows = append(rows, "",
		s.TitleMuted.Render("Tab: next • Ctrl+S: save • Esc: cancel"),
	)

	form := lipgloss.JoinVertical(lipgloss.Left, rows...)
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskListView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Task?"),
		"",
		s.TitleMuted.Render(v.deleteTargetName),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskListView) renderStatusLine() string {
	if v.statusLine == "" {
		return ""
	}
	return v.styles.StatusBar.Render(v.styles.ErrorText.Render(v.statusLine)) + "\n"
}

func (v *TaskListView) renderHelp() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	if contentWidth > 0 && contentWidth < 50 {
		return s.Help.Render(s.HelpKey.Render("n") + " new • " + s.HelpKey.Render("q") + " quit")
	}

	// Status actions only apply to non-overdue tasks; hide the hints
	// when the selection is overdue.
	actions := ""
	if t, ok := v.selected(); ok && t.Status != models.StatusOverdue {
		if t.Status == models.StatusPending {
			actions = s.HelpKey.Render("c") + " complete • "
		} else {
			actions = s.HelpKey.Render("o") + " reopen • "
		}
	}

	return s.Help.Render(
		actions +
			s.HelpKey.Render("n") + " new • " +
			s.HelpKey.Render("e") + " edit • " +
			s.HelpKey.Render("d") + " del • " +
			s.HelpKey.Render("/") + " search • " +
			s.HelpKey.Render("s") + " status • " +
			s.HelpKey.Render("f") + " category • " +
			s.HelpKey.Render("u") + " due • " +
			s.HelpKey.Render("x") + " clear • " +
			s.HelpKey.Render("r") + " reload • " +
			s.HelpKey.Render("L") + " logout • " +
			s.HelpKey.Render("q") + " quit",
	)
}

package ui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/session"
	"github.com/taskdeck/taskdeck/internal/ui/views"
)

// Currently active view
type View int

const (
	ViewLoading View = iota
	ViewLogin
	ViewTasks
)

type App struct {
	client            *api.Client
	gate              *session.Gate
	log               *slog.Logger
	reconcileInterval time.Duration

	currentView View
	login       *views.LoginView
	taskList    *views.TaskListView
	width       int
	height      int
}

// Creates a new application
func NewApp(client *api.Client, gate *session.Gate, log *slog.Logger, reconcileInterval time.Duration) *App {
	return &App{
		client:            client,
		gate:              gate,
		log:               log,
		reconcileInterval: reconcileInterval,
		currentView:       ViewLoading,
		login:             views.NewLoginView(gate),
	}
}

type sessionLoadedMsg struct{}

func (a *App) Init() tea.Cmd {
	// Resolve the existing session before deciding which view to show.
	return tea.Batch(a.login.Init(), func() tea.Msg {
		a.gate.Load(context.Background())
		return sessionLoadedMsg{}
	})
}

func (a *App) openTasks() tea.Cmd {
	a.currentView = ViewTasks
	a.taskList = views.NewTaskListView(a.client, a.gate.User(), a.log, a.reconcileInterval)

	return tea.Batch(
		a.taskList.Init(),
		func() tea.Msg {
			return tea.WindowSizeMsg{Width: a.width, Height: a.height}
		},
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// The login view persists, keep its size current
		a.login.Update(msg)

	case sessionLoadedMsg:
		if a.gate.User() != nil {
			return a, a.openTasks()
		}
		a.currentView = ViewLogin
		return a, nil

	case views.LoggedIn:
		return a, a.openTasks()

	case views.RequestLogout:
		// Forget locally right away and drop the task view so its
		// reconcile timer chain ends. The server round trip happens in a
		// command; blocking the event loop on it would freeze the UI.
		a.gate.Forget()
		a.taskList = nil
		a.currentView = ViewLogin
		a.login = views.NewLoginView(a.gate)
		return a, tea.Batch(
			a.login.Init(),
			func() tea.Msg {
				a.gate.Logout(context.Background())
				return nil
			},
			func() tea.Msg {
				return tea.WindowSizeMsg{Width: a.width, Height: a.height}
			},
		)
	}

	var cmd tea.Cmd
	switch a.currentView {
	case ViewLogin:
		_, cmd = a.login.Update(msg)
	case ViewTasks:
		if a.taskList != nil {
			_, cmd = a.taskList.Update(msg)
		}
	}

	return a, cmd
}

func (a *App) View() string {
	switch a.currentView {
	case ViewLoading:
		return ""
	case ViewTasks:
		if a.taskList != nil {
			return a.taskList.View()
		}
	}
	return a.login.View()
}

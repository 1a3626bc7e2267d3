package views

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/session"
	"github.com/taskdeck/taskdeck/internal/ui/keys"
	"github.com/taskdeck/taskdeck/internal/ui/styles"
)

// LoggedIn signals a successful login to the app
type LoggedIn struct {
	User *models.User
}

type authFailedMsg struct{ err error }

type registeredMsg struct{ username string }

// LoginView is the authentication screen, with a register mode
type LoginView struct {
	gate   *session.Gate
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	registering bool
	submitting  bool
	spinner     spinner.Model

	username textinput.Model
	email    textinput.Model
	password textinput.Model
	confirm  textinput.Model
	focusIdx int

	formErr   string
	fieldErrs map[string]string
	notice    string
}

// NewLoginView creates the login screen
func NewLoginView(gate *session.Gate) *LoginView {
	s := styles.NewStyles()

	username := textinput.New()
	username.Placeholder = "Username"
	username.CharLimit = 100
	username.Focus()

	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 200

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 100
	password.EchoMode = textinput.EchoPassword

	confirm := textinput.New()
	confirm.Placeholder = "Confirm password"
	confirm.CharLimit = 100
	confirm.EchoMode = textinput.EchoPassword

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Current.Primary)

	return &LoginView{
		gate:     gate,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
		spinner:  sp,
		username: username,
		email:    email,
		password: password,
		confirm:  confirm,
	}
}

func (v *LoginView) Init() tea.Cmd {
	return textinput.Blink
}

// fieldCount is 2 for login mode, 4 for register mode
func (v *LoginView) fieldCount() int {
	if v.registering {
		return 4
	}
	return 2
}

func (v *LoginView) inputs() []*textinput.Model {
	if v.registering {
		return []*textinput.Model{&v.username, &v.email, &v.password, &v.confirm}
	}
	return []*textinput.Model{&v.username, &v.password}
}

func (v *LoginView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case spinner.TickMsg:
		if !v.submitting {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case authFailedMsg:
		v.submitting = false
		v.setErrors(msg.err)
		return v, nil

	case registeredMsg:
		// Back to login mode with the username prefilled.
		v.submitting = false
		v.registering = false
		v.notice = "Account created. Log in to continue."
		v.username.SetValue(msg.username)
		v.password.Reset()
		v.confirm.Reset()
		v.focusIdx = 0
		v.updateFocus()
		return v, nil

	case tea.KeyMsg:
		if v.submitting {
			return v, nil
		}
		return v.updateKeys(msg)
	}

	return v, nil
}

func (v *LoginView) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return v, tea.Quit

	case key.Matches(msg, v.keys.Tab):
		v.focusIdx = (v.focusIdx + 1) % v.fieldCount()
		v.updateFocus()
		return v, textinput.Blink

	case msg.String() == "shift+tab":
		n := v.fieldCount()
		v.focusIdx = (v.focusIdx + n - 1) % n
		v.updateFocus()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Enter):
		if v.focusIdx < v.fieldCount()-1 {
			v.focusIdx++
			v.updateFocus()
			return v, textinput.Blink
		}
		return v.submit()

	case msg.String() == "ctrl+r":
		// Toggle between login and register mode
		v.registering = !v.registering
		v.formErr = ""
		v.fieldErrs = nil
		v.notice = ""
		v.focusIdx = 0
		v.updateFocus()
		return v, textinput.Blink
	}

	var cmd tea.Cmd
	inputs := v.inputs()
	*inputs[v.focusIdx], cmd = inputs[v.focusIdx].Update(msg)
	return v, cmd
}

func (v *LoginView) updateFocus() {
	for i, in := range v.inputs() {
		if i == v.focusIdx {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

func (v *LoginView) submit() (tea.Model, tea.Cmd) {
	username := strings.TrimSpace(v.username.Value())
	password := v.password.Value()
	v.formErr = ""
	v.fieldErrs = nil
	v.notice = ""

	if username == "" || password == "" {
		v.formErr = "Username and password are required."
		return v, nil
	}

	if v.registering {
		email := strings.TrimSpace(v.email.Value())
		confirm := v.confirm.Value()
		if password != confirm {
			v.fieldErrs = map[string]string{"confirm_password": "Passwords do not match."}
			return v, nil
		}
		reg := models.Registration{
			Username:        username,
			Email:           email,
			Password:        password,
			ConfirmPassword: confirm,
		}
		v.submitting = true
		return v, tea.Batch(v.spinner.Tick, func() tea.Msg {
			if _, err := v.gate.Register(context.Background(), reg); err != nil {
				return authFailedMsg{err: err}
			}
			return registeredMsg{username: username}
		})
	}

	v.submitting = true
	return v, tea.Batch(v.spinner.Tick, func() tea.Msg {
		if err := v.gate.Login(context.Background(), username, password); err != nil {
			return authFailedMsg{err: err}
		}
		return LoggedIn{User: v.gate.User()}
	})
}

func (v *LoginView) setErrors(err error) {
	var verr *api.ValidationError
	switch {
	case errors.As(err, &verr):
		v.fieldErrs = make(map[string]string, len(verr.Fields))
		for field := range verr.Fields {
			v.fieldErrs[field] = verr.FieldError(field)
		}
	case errors.Is(err, api.ErrUnauthenticated):
		v.formErr = "Incorrect username or password."
	default:
		v.formErr = "Could not reach the server. Try again."
	}
}

func (v *LoginView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-6, 20, 40)

	title := "Log In"
	action := " Log In "
	toggleLabel := "register"
	if v.registering {
		title = "Create Account"
		action = " Register "
		toggleLabel = "back to login"
	}

	rows := []string{s.Title.Render(title), ""}

	labels := []string{"Username:", "Password:"}
	fields := []*textinput.Model{&v.username, &v.password}
	errKeys := []string{"username", "password"}
	if v.registering {
		labels = []string{"Username:", "Email:", "Password:", "Confirm password:"}
		fields = []*textinput.Model{&v.username, &v.email, &v.password, &v.confirm}
		errKeys = []string{"username", "email", "password", "confirm_password"}
	}

	for i, label := range labels {
		style := s.Input
		if v.focusIdx == i {
			style = s.InputFocused
		}
		rows = append(rows, label, style.Width(inputWidth).Render(fields[i].View()))
		if msg := v.fieldErrs[errKeys[i]]; msg != "" {
			rows = append(rows, s.ErrorText.Render(msg))
		}
		rows = append(rows, "")
	}

	if v.submitting {
		rows = append(rows, v.spinner.View()+" "+s.TitleMuted.Render("Contacting server..."))
	} else {
		rows = append(rows, s.ButtonPrimary.Render(action))
	}

	if v.formErr != "" {
		rows = append(rows, "", s.ErrorText.Render(v.formErr))
	}
	if v.notice != "" {
		rows = append(rows, "", s.TitleMuted.Render(v.notice))
	}

	rows = append(rows, "", s.Help.Render(
		s.HelpKey.Render("tab")+" next • "+
			s.HelpKey.Render("↵")+" submit • "+
			s.HelpKey.Render("ctrl+r")+" "+toggleLabel+" • "+
			s.HelpKey.Render("ctrl+c")+" quit",
	))

	form := lipgloss.JoinVertical(lipgloss.Left, rows...)
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

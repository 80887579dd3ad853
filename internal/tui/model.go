// Package tui renders the storefront in the terminal: menu browsing, the
// login form, and the role-gated admin dashboard. Pages consume session
// state and API results; they never touch tokens themselves.
package tui

import (
	"context"
	"errors"
	"sort"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dorahnaks/jill-project/internal/api"
	"github.com/dorahnaks/jill-project/internal/config"
	"github.com/dorahnaks/jill-project/internal/guard"
	"github.com/dorahnaks/jill-project/internal/session"
)

// Options wires the TUI to the client stack built in cmd.
type Options struct {
	Version string
	Config  *config.Config
	API     *api.Client
	Session *session.Session
}

// Run starts the storefront TUI and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// ---------- messages from async commands ----------

type hydratedMsg struct{}

type menuMsg struct {
	items []api.MenuItem
	err   error
}

type loginDoneMsg struct{ err error }

type dashboardMsg struct {
	orders []api.Order
	err    error
}

// ---------- pages ----------

type page int

const (
	pageMenu page = iota
	pageDetail
	pageLogin
	pageDashboard
)

var adminGate = guard.NewRoleGate(session.RoleAdmin)

// Model is the bubbletea model managing the full storefront state.
type Model struct {
	opts Options

	page   page
	width  int
	height int

	spinner spinner.Model

	// Menu page
	loadingMenu bool
	items       []api.MenuItem
	cursor      int
	menuErr     string
	menuRaw     string
	showRaw     bool

	// Detail page
	detail *api.MenuItem

	// Login page
	emailInput    textinput.Model
	passwordInput textinput.Model
	loginRole     session.Role
	focusIdx      int
	loggingIn     bool
	loginErr      string

	// Dashboard page
	loadingDash bool
	dashPending bool
	orders      []api.Order
	dashErr     string

	quitting bool
}

// NewModel creates the initial model. The session starts hydrating; the
// hydrate command settles it before any dashboard guard check matters.
func NewModel(opts Options) Model {
	email := textinput.New()
	email.Prompt = ""
	email.Placeholder = "you@example.com"
	email.CharLimit = 128
	email.Focus()

	password := textinput.New()
	password.Prompt = ""
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128

	sp := spinner.New()
	sp.Spinner = storeSpinner

	role := session.RoleCustomer
	if opts.Config != nil {
		if parsed, err := session.ParseRole(opts.Config.DefaultRole); err == nil {
			role = parsed
		}
	}

	return Model{
		opts:          opts,
		page:          pageMenu,
		spinner:       sp,
		loadingMenu:   true,
		emailInput:    email,
		passwordInput: password,
		loginRole:     role,
	}
}

// ---------- async commands ----------

func (m Model) hydrateCmd() tea.Cmd {
	return func() tea.Msg {
		m.opts.Session.Hydrate(context.Background())
		return hydratedMsg{}
	}
}

func (m Model) loadMenuCmd() tea.Cmd {
	return func() tea.Msg {
		items, err := m.opts.API.MenuItems(context.Background())
		return menuMsg{items: items, err: err}
	}
}

func (m Model) loginCmd(email, password string, role session.Role) tea.Cmd {
	return func() tea.Msg {
		err := m.opts.Session.Login(context.Background(), email, password, role)
		return loginDoneMsg{err: err}
	}
}

func (m Model) loadDashboardCmd() tea.Cmd {
	return func() tea.Msg {
		orders, err := m.opts.API.Orders(context.Background())
		return dashboardMsg{orders: orders, err: err}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.hydrateCmd(), m.loadMenuCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.emailInput.Width = min(48, m.width-12)
		m.passwordInput.Width = min(48, m.width-12)

	case spinner.TickMsg:
		if m.loadingMenu || m.loggingIn || m.loadingDash || m.dashPending {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case hydratedMsg:
		// Hydration settled. If the user is waiting on the dashboard
		// guard, re-evaluate it now that Pending can no longer come back.
		if m.dashPending {
			m.dashPending = false
			return m.enterDashboard(cmds)
		}

	case menuMsg:
		m.loadingMenu = false
		if msg.err != nil {
			m.menuErr, m.menuRaw = describeError(msg.err)
		} else {
			m.menuErr, m.menuRaw = "", ""
			m.items = msg.items
			// Group categories together for the list view.
			sort.SliceStable(m.items, func(i, j int) bool {
				if m.items[i].Category != m.items[j].Category {
					return m.items[i].Category < m.items[j].Category
				}
				return m.items[i].Name < m.items[j].Name
			})
			if m.cursor >= len(m.items) {
				m.cursor = 0
			}
		}

	case loginDoneMsg:
		m.loggingIn = false
		if msg.err != nil {
			m.loginErr = loginErrorText(msg.err)
			break
		}
		m.loginErr = ""
		m.passwordInput.SetValue("")
		m.page = pageMenu

	case dashboardMsg:
		m.loadingDash = false
		if msg.err != nil {
			m.dashErr, _ = describeError(msg.err)
		} else {
			m.dashErr = ""
			m.orders = msg.orders
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.page == pageLogin {
		return m.handleLoginKey(msg)
	}

	switch key {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		if m.page != pageMenu {
			m.page = pageMenu
		}

	case "up", "k":
		if m.page == pageMenu && m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.page == pageMenu && m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case "enter":
		if m.page == pageMenu && len(m.items) > 0 {
			item := m.items[m.cursor]
			m.detail = &item
			m.page = pageDetail
		}

	case "r":
		if m.page == pageMenu {
			m.loadingMenu = true
			return m, tea.Batch(m.spinner.Tick, m.loadMenuCmd())
		}

	case "t":
		if m.page == pageMenu && m.menuRaw != "" {
			m.showRaw = !m.showRaw
		}

	case "l":
		snap := m.opts.Session.Snapshot()
		if snap.Status == session.StatusAuthenticated {
			m.opts.Session.Logout()
		} else {
			m.loginErr = ""
			m.focusIdx = 0
			m.emailInput.Focus()
			m.passwordInput.Blur()
			m.page = pageLogin
		}

	case "d":
		return m.enterDashboard(nil)
	}

	return m, nil
}

// enterDashboard applies the route guard. Pending keeps a neutral loading
// view (no flash-redirect before hydration completes); Redirect lands on
// the menu, the TUI's "/" equivalent; Allow loads the dashboard data.
func (m Model) enterDashboard(cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	res := guard.Authorize(m.opts.Session.Snapshot(), adminGate)
	switch res.Decision {
	case guard.Pending:
		m.dashPending = true
		m.page = pageDashboard
		cmds = append(cmds, m.spinner.Tick)
	case guard.Redirect:
		m.dashPending = false
		m.page = pageMenu
	case guard.Allow:
		m.dashPending = false
		m.page = pageDashboard
		m.loadingDash = true
		cmds = append(cmds, m.spinner.Tick, m.loadDashboardCmd())
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.page = pageMenu
		return m, nil

	case "tab", "shift+tab", "up", "down":
		if msg.String() == "shift+tab" || msg.String() == "up" {
			m.focusIdx = (m.focusIdx + 2) % 3
		} else {
			m.focusIdx = (m.focusIdx + 1) % 3
		}
		m.emailInput.Blur()
		m.passwordInput.Blur()
		switch m.focusIdx {
		case 0:
			m.emailInput.Focus()
		case 1:
			m.passwordInput.Focus()
		}
		return m, nil

	case "left", "right", " ":
		if m.focusIdx == 2 {
			if m.loginRole == session.RoleAdmin {
				m.loginRole = session.RoleCustomer
			} else {
				m.loginRole = session.RoleAdmin
			}
			return m, nil
		}

	case "enter":
		if m.loggingIn {
			return m, nil
		}
		email := m.emailInput.Value()
		password := m.passwordInput.Value()
		if email == "" || password == "" {
			m.loginErr = "Email and password are required"
			return m, nil
		}
		m.loggingIn = true
		m.loginErr = ""
		return m, tea.Batch(m.spinner.Tick, m.loginCmd(email, password, m.loginRole))
	}

	var cmd tea.Cmd
	switch m.focusIdx {
	case 0:
		m.emailInput, cmd = m.emailInput.Update(msg)
	case 1:
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

// describeError turns a classified API error into a short banner message
// plus optional raw payload for the technical-details toggle.
func describeError(err error) (banner, raw string) {
	var serverErr *api.ServerError
	var netErr *api.NetworkError
	var setupErr *api.RequestSetupError
	switch {
	case errors.As(err, &serverErr):
		return serverErr.Message, string(serverErr.Raw)
	case errors.As(err, &netErr):
		return "Cannot reach the backend. Is it running?", ""
	case errors.As(err, &setupErr):
		return "Request could not be sent: " + setupErr.Message, ""
	default:
		return err.Error(), ""
	}
}

// loginErrorText maps session login errors to the inline form message.
func loginErrorText(err error) string {
	var rejected *session.AuthRejectedError
	var invalid *session.ValidationError
	switch {
	case errors.As(err, &rejected):
		return rejected.Error()
	case errors.As(err, &invalid):
		return invalid.Error()
	case errors.Is(err, session.ErrAuthFailed):
		return "Authentication failed"
	default:
		return err.Error()
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

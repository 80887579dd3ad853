package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/dorahnaks/jill-project/internal/api"
	"github.com/dorahnaks/jill-project/internal/session"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.page {
	case pageMenu:
		body = m.viewMenu()
	case pageDetail:
		body = m.viewDetail()
	case pageLogin:
		body = m.viewLogin()
	case pageDashboard:
		body = m.viewDashboard()
	}

	return body + "\n" + m.viewStatusBar()
}

// ---------- status bar ----------

func (m Model) viewStatusBar() string {
	snap := m.opts.Session.Snapshot()

	var who string
	switch snap.Status {
	case session.StatusHydrating:
		who = "restoring session..."
	case session.StatusAuthenticated:
		who = statusUserStyle.Render(fmt.Sprintf("%s (%s)", snap.User.DisplayName, snap.User.Role))
	default:
		who = "browsing as guest"
	}

	sep := separatorStyle.Render(" | ")
	left := statusBarStyle.Render("jill "+m.opts.Version) + sep + statusBarStyle.Render(who)

	var hint string
	switch m.page {
	case pageMenu:
		hint = "enter detail · r reload · l login/logout · d dashboard · q quit"
	case pageDetail:
		hint = "esc back"
	case pageLogin:
		hint = "tab fields · space toggle role · enter submit · esc cancel"
	case pageDashboard:
		hint = "esc back · q quit"
	}
	return left + sep + hintStyle.Render(hint)
}

// ---------- menu page ----------

func (m Model) viewMenu() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Jill Catering · Menu"))
	b.WriteString("\n\n")

	if m.loadingMenu {
		b.WriteString(m.spinner.View() + " loading menu...\n")
		return b.String()
	}
	if m.menuErr != "" {
		b.WriteString(errorStyle.Render("Error fetching menu: "+m.menuErr) + "\n")
		if m.menuRaw != "" {
			if m.showRaw {
				b.WriteString(rawDetailStyle.Render(m.menuRaw) + "\n")
			} else {
				b.WriteString(hintStyle.Render("press t for technical details") + "\n")
			}
		}
		b.WriteString(hintStyle.Render("press r to retry") + "\n")
		return b.String()
	}
	if len(m.items) == 0 {
		b.WriteString("The menu is empty.\n")
		return b.String()
	}

	lastCategory := ""
	for i, item := range m.items {
		if item.Category != lastCategory {
			if lastCategory != "" {
				b.WriteString("\n")
			}
			b.WriteString(categoryStyle.Render(item.Category) + "\n")
			lastCategory = item.Category
		}

		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("❯ ")
		}
		line := fmt.Sprintf("%-28s %s", item.Name, priceStyle.Render(formatPrice(item.Price)))
		if !item.Available {
			line = unavailableStyle.Render(line + "  (sold out)")
		}
		b.WriteString(prefix + line + "\n")
	}
	return b.String()
}

// ---------- detail page ----------

func (m Model) viewDetail() string {
	if m.detail == nil {
		return ""
	}
	md := fmt.Sprintf("# %s\n\n**%s** · %s\n\n%s\n",
		m.detail.Name, m.detail.Category, formatPrice(m.detail.Price), m.detail.Description)
	if !m.detail.Available {
		md += "\n*Currently unavailable.*\n"
	}

	if r := m.markdownRenderer(); r != nil {
		if out, err := r.Render(md); err == nil {
			return out
		}
	}
	return md
}

// markdownRenderer builds a glamour renderer sized to the window.
func (m Model) markdownRenderer() *glamour.TermRenderer {
	width := m.width - 4
	if width < 20 {
		width = 72
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}

// ---------- login page ----------

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Sign in"))
	b.WriteString("\n\n")

	b.WriteString(formLabelStyle.Render("Email") + "\n")
	b.WriteString(m.emailInput.View() + "\n\n")
	b.WriteString(formLabelStyle.Render("Password") + "\n")
	b.WriteString(m.passwordInput.View() + "\n\n")

	roleLine := fmt.Sprintf("Role: %s", m.loginRole)
	if m.focusIdx == 2 {
		roleLine = cursorStyle.Render("❯ ") + roleLine
	} else {
		roleLine = "  " + roleLine
	}
	b.WriteString(roleLine + "\n")

	if m.loggingIn {
		b.WriteString("\n" + m.spinner.View() + " signing in...\n")
	} else if m.loginErr != "" {
		b.WriteString("\n" + rejectStyle.Render(m.loginErr) + "\n")
	}

	return formBorderStyle.Render(b.String())
}

// ---------- dashboard page ----------

func (m Model) viewDashboard() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Admin Dashboard"))
	b.WriteString("\n\n")

	if m.dashPending {
		// Session still hydrating: neutral loading state, never the
		// protected content and never a redirect.
		b.WriteString(m.spinner.View() + " checking session...\n")
		return b.String()
	}
	if m.loadingDash {
		b.WriteString(m.spinner.View() + " loading orders...\n")
		return b.String()
	}
	if m.dashErr != "" {
		b.WriteString(errorStyle.Render("Error loading dashboard: "+m.dashErr) + "\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("%d orders · %d menu items\n\n", len(m.orders), len(m.items)))

	b.WriteString(categoryStyle.Render("Orders by delivery status") + "\n")
	b.WriteString(barChart(countBy(m.orders, func(o api.Order) string { return o.DeliveryStatus }), chartBarStyle))
	b.WriteString("\n")
	b.WriteString(categoryStyle.Render("Menu items by category") + "\n")
	b.WriteString(barChart(countByItems(m.items), chartAltBarStyle))

	return b.String()
}

func countBy(orders []api.Order, key func(api.Order) string) map[string]int {
	counts := make(map[string]int)
	for _, o := range orders {
		k := key(o)
		if k == "" {
			k = "UNKNOWN"
		}
		counts[k]++
	}
	return counts
}

func countByItems(items []api.MenuItem) map[string]int {
	counts := make(map[string]int)
	for _, item := range items {
		counts[item.Category]++
	}
	return counts
}

// barChart renders a horizontal bar chart, widest bar capped at 32 cells.
func barChart(counts map[string]int, style lipgloss.Style) string {
	if len(counts) == 0 {
		return hintStyle.Render("no data") + "\n"
	}

	keys := make([]string, 0, len(counts))
	maxCount := 0
	for k, n := range counts {
		keys = append(keys, k)
		if n > maxCount {
			maxCount = n
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		n := counts[k]
		width := n * 32 / maxCount
		if width == 0 {
			width = 1
		}
		bar := style.Render(strings.Repeat("█", width))
		b.WriteString(fmt.Sprintf("%s %s %d\n", chartLabelStyle.Render(fmt.Sprintf("%-14s", k)), bar, n))
	}
	return b.String()
}

// formatPrice renders a backend price. Amounts are whole shillings, so
// decimals only show when the backend sends them.
func formatPrice(p float64) string {
	if p == float64(int64(p)) {
		return fmt.Sprintf("%d UGX", int64(p))
	}
	return fmt.Sprintf("%.2f UGX", p)
}

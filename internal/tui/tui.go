// Package tui implements the interactive filter browser launched by
// "hs filter browse".
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xifanyan/helpspot"
)

var (
	ctx  context.Context
	spnr spinner.Model

	// App Dimensions
	windowWidth          int
	windowHeight         int
	headerHeight         int
	footerHeight         int
	viewportDvdrHeight   int
	verticalMarginHeight int
	verticalLeftForList  int
)

type Model struct {
	client   *helpspot.Client
	filterID string

	requests []helpspot.Request
	cursor   int
	loading  bool
	err      error

	viewport viewPort
	quitting bool
}

type viewPort struct {
	model viewport.Model
	title string
	body  string
	show  bool
	ready bool
}

type requestsMsg []helpspot.Request

type fetchErrMsg struct{ err error }

type calculateDimensionsMsg struct{}

func NewModel(cx context.Context, client *helpspot.Client, filterID string) *Model {
	ctx = cx

	spnr = spinner.New()
	spnr.Spinner = spinner.Ellipsis
	spnr.Style = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "236", Dark: "248"})

	return &Model{
		client:   client,
		filterID: filterID,
		loading:  true,
		viewport: viewPort{title: "Ticket Detail", show: false},
	}
}

// Run fetches the filter and hands the terminal over to the browser until
// the user exits.
func Run(cx context.Context, client *helpspot.Client, filterID string) error {
	p := tea.NewProgram(NewModel(cx, client, filterID), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running filter browser: %w", err)
	}
	return nil
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchRequests(),
		spnr.Tick,
	)
}

func (m *Model) fetchRequests() tea.Cmd {
	return func() tea.Msg {
		reqs, err := m.client.GetFilterResults(ctx, m.filterID, helpspot.FilterResultsOptions{})
		if err != nil {
			slog.Error("fetching filter results", "filter", m.filterID, "error", err)
			return fetchErrMsg{err: err}
		}
		slog.Debug("fetched filter results", "filter", m.filterID, "count", len(reqs))
		return requestsMsg(reqs)
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m, calculateDimensions(msg.Width, msg.Height, m.viewport)

	case calculateDimensionsMsg:
		if !m.viewport.ready {
			m.viewport.model = viewport.New(windowWidth, (windowHeight-verticalMarginHeight)*2/3)
			m.viewport.model.SetContent(m.viewport.body)
			m.viewport.ready = true
		} else {
			m.viewport.model.Width = windowWidth
			m.viewport.model.Height = (windowHeight - verticalMarginHeight) * 2 / 3
			m.viewport.model.SetContent(m.viewport.body)
		}

		if m.viewport.show {
			verticalMarginHeight = headerHeight + footerHeight + viewportDvdrHeight
			verticalLeftForList = windowHeight - verticalMarginHeight - m.viewport.model.Height
		} else {
			verticalMarginHeight = headerHeight + footerHeight
			verticalLeftForList = windowHeight - verticalMarginHeight
		}

	case requestsMsg:
		m.loading = false
		m.requests = msg

	case fetchErrMsg:
		m.loading = false
		m.err = msg.err

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			if m.viewport.show {
				m.viewport.show = false
				return m, calculateDimensions(windowWidth, windowHeight, m.viewport)
			}
			m.quitting = true
			cmds = append(cmds, tea.Quit)
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.viewport.show {
					m.showDetail()
				}
			}
		case "down", "j":
			if m.cursor < len(m.requests)-1 {
				m.cursor++
				if m.viewport.show {
					m.showDetail()
				}
			}
		case "enter":
			if len(m.requests) > 0 {
				m.showDetail()
				if !m.viewport.show {
					m.viewport.show = true
					return m, calculateDimensions(windowWidth, windowHeight, m.viewport)
				}
			}
		case "c":
			if m.viewport.show {
				cmds = append(cmds, copyToClipboard(m.viewport.body))
			}
		case "r":
			m.loading = true
			m.err = nil
			cmds = append(cmds, m.fetchRequests())
		}
	}

	spnr, cmd = spnr.Update(msg)
	cmds = append(cmds, cmd)

	if m.viewport.show {
		m.viewport.model.SetContent(m.viewport.body)
		m.viewport.model, cmd = m.viewport.model.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) showDetail() {
	req := m.requests[m.cursor]
	m.viewport.title = fmt.Sprintf("Ticket #%d", req.ID)
	m.viewport.body = renderDetail(req)
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	if !m.viewport.ready {
		return runSpinner("Initializing...")
	}

	var body string
	switch {
	case m.loading:
		body = runSpinner("Fetching filter results...")
	case m.err != nil:
		body = errorStyle().Render(fmt.Sprintf("Error: %v", m.err))
	case len(m.requests) == 0:
		body = "Filter is empty"
	default:
		body = m.renderList()
	}

	listView := lipgloss.NewStyle().
		Width(windowWidth).
		Height(verticalLeftForList).
		PaddingLeft(1).
		Render(body)

	views := []string{appHeader(m.filterID), listView}

	if m.viewport.show {
		views = append(views, viewportDivider(m.viewport), m.viewport.model.View(), appFooter())
	} else {
		views = append(views, appFooter())
	}

	return lipgloss.JoinVertical(lipgloss.Top, views...)
}

func (m *Model) renderList() string {
	var sb strings.Builder
	for i, req := range m.requests {
		line := fmt.Sprintf("#%-6d %-22s %s", req.ID, truncate(req.FullName, 22), truncate(req.Title, 50))
		if req.Urgent {
			line = urgentStyle().Render(line)
		}
		if i == m.cursor {
			line = selectedStyle().Render("> " + line)
		} else {
			line = "  " + line
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}

func renderDetail(req helpspot.Request) string {
	var sb strings.Builder
	write := func(label, value string) {
		if value != "" {
			sb.WriteString(fmt.Sprintf("%s %s\n", labelStyle().Render(label+":"), value))
		}
	}

	write("Title", req.Title)
	write("Customer", req.FullName)
	write("Email", req.Email)
	write("Phone", req.Phone)
	if req.OpenedAt > 0 {
		write("Opened", time.Unix(req.OpenedAt, 0).Format(time.RFC1123))
	}
	state := "Closed"
	if req.Open {
		state = "Open"
	}
	if req.Urgent {
		state += " / Urgent"
	}
	write("State", state)
	write("Status", req.Status)
	write("Category", req.Category)
	if req.Note != "" {
		sb.WriteString("\n" + req.Note + "\n")
	}

	return sb.String()
}

func runSpinner(text string) string {
	return fmt.Sprintf("%s%s", text, spnr.View())
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func copyToClipboard(s string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(s); err != nil {
			slog.Error("copying ticket detail to clipboard", "error", err)
			return nil
		}
		slog.Debug("copied ticket detail to clipboard")
		return nil
	}
}

func calculateDimensions(w, h int, v viewPort) tea.Cmd {
	return func() tea.Msg {
		windowWidth = w
		windowHeight = h
		headerHeight = lipgloss.Height(appHeader(""))
		footerHeight = lipgloss.Height(appFooter())
		viewportDvdrHeight = lipgloss.Height(viewportDivider(v))
		return calculateDimensionsMsg{}
	}
}

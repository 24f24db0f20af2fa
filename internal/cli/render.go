package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/xifanyan/helpspot"
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "236", Dark: "247"})

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))

	urgentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
)

func kv(label, value string) string {
	return fmt.Sprintf("%s %s", labelStyle.Render(label+":"), value)
}

func header(s string) string {
	return headerStyle.Render(s)
}

func renderRequest(r helpspot.Request) string {
	var b strings.Builder

	title := r.Title
	if title == "" {
		title = "(no title)"
	}
	b.WriteString(header(fmt.Sprintf("#%d %s", r.ID, title)) + "\n")

	b.WriteString(kv("Status", r.Status) + "\n")
	b.WriteString(kv("Category", r.Category) + "\n")
	b.WriteString(kv("Assigned to", r.AssignedTo) + "\n")
	b.WriteString(kv("Open", yesNo(r.Open)) + "\n")
	if r.Urgent {
		b.WriteString(kv("Urgent", urgentStyle.Render("YES")) + "\n")
	}
	if r.FullName != "" || r.Email != "" {
		b.WriteString(kv("Customer", strings.TrimSpace(r.FullName+" "+r.Email)) + "\n")
	}
	if r.OpenedAt != 0 {
		b.WriteString(kv("Opened", formatEpoch(r.OpenedAt)) + "\n")
	}
	if r.ClosedAt != 0 {
		b.WriteString(kv("Closed", formatEpoch(r.ClosedAt)) + "\n")
	}
	if r.AccessKey != "" {
		b.WriteString(kv("Access key", r.AccessKey) + "\n")
	}
	if r.Note != "" {
		b.WriteString(kv("Note", r.Note) + "\n")
	}

	return b.String()
}

func renderRequestLine(r helpspot.Request) string {
	marker := " "
	if r.Urgent {
		marker = urgentStyle.Render("!")
	}
	return fmt.Sprintf("%s #%-8d %-12s %s", marker, r.ID, r.Status, r.Title)
}

func formatEpoch(epoch int64) string {
	return time.Unix(epoch, 0).UTC().Format("2006-01-02 15:04 MST")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

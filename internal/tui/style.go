package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = func() lipgloss.Style {
		b := lipgloss.NormalBorder()
		return lipgloss.NewStyle().BorderStyle(b).Padding(0, 1)
	}

	labelStyle = func() lipgloss.Style {
		return lipgloss.NewStyle().Bold(true)
	}

	selectedStyle = func() lipgloss.Style {
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "25", Dark: "39"})
	}

	urgentStyle = func() lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "124", Dark: "203"})
	}

	errorStyle = func() lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "124", Dark: "203"})
	}
)

func titleBar(t string) string {
	titleBox := titleStyle().Render(t)

	dividerLength := windowWidth - lipgloss.Width(titleBox)

	return lipgloss.JoinHorizontal(lipgloss.Center, titleBox, line(dividerLength))
}

func line(w int) string {
	line := strings.Repeat("─", maxRepeats(0, w))
	return line
}

func maxRepeats(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func appHeader(filterID string) string {
	title := "Filter Browser"
	if filterID != "" {
		title = fmt.Sprintf("Filter Browser: %s", filterID)
	}
	return titleBar(title)
}

func viewportDivider(v viewPort) string {
	return titleBar(v.title)
}

func appFooter() string {
	return titleBar("Enter: Detail | C: Copy | R: Reload | ESC: Exit")
}

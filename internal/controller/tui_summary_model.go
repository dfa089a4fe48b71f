package controller

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/nedbat/covcode/internal/model"
)

const coverageBarWidth = 12

// fileRow is one list entry of the summary browser.
type fileRow struct {
	name string
	nums m.Numbers
}

func (f fileRow) FilterValue() string {
	return f.name
}

// Simple delegate for summary list items.
type summaryDelegate struct {
	precision int
}

func (d summaryDelegate) Height() int  { return 1 }
func (d summaryDelegate) Spacing() int { return 0 }
func (d summaryDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d summaryDelegate) Render(w io.Writer, lm list.Model, index int, item list.Item) {
	row, ok := item.(fileRow)
	if !ok {
		return
	}

	isSelected := index == lm.Index()
	percent := row.nums.PercentCovered()

	// Percent column (8) + bar + spacing.
	width := lm.Width() - 8 - coverageBarWidth - 4

	var nameStyle, pctStyle lipgloss.Style

	if isSelected {
		nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true)
		pctStyle = nameStyle.Width(8).Align(lipgloss.Right)
	} else {
		nameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		pctStyle = lipgloss.NewStyle().
			Foreground(coverageColor(percent)).
			Bold(true).
			Width(8).
			Align(lipgloss.Right)
	}

	line := fmt.Sprintf("%s  %s  %s",
		pctStyle.Render(m.DisplayCovered(percent, d.precision)+"%"),
		coverageBar(percent),
		nameStyle.Render(truncateToWidth(row.name, width)),
	)
	_, _ = fmt.Fprint(w, line)
}

// coverageColor grades a percentage for terminal display.
func coverageColor(percent float64) lipgloss.Color {
	switch {
	case percent >= 90:
		return lipgloss.Color("10") // green
	case percent >= 70:
		return lipgloss.Color("11") // yellow
	default:
		return lipgloss.Color("9") // red
	}
}

// coverageBar renders a fixed-width filled bar for a percentage.
func coverageBar(percent float64) string {
	filled := int(percent / 100 * coverageBarWidth)
	if filled > coverageBarWidth {
		filled = coverageBarWidth
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", coverageBarWidth-filled)

	return lipgloss.NewStyle().Foreground(coverageColor(percent)).Render(bar)
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	if width <= 1 {
		return ellipsis
	}

	maxWidth := width - lipgloss.Width(ellipsis)
	if maxWidth <= 0 {
		return ellipsis
	}

	currentWidth := 0

	result := make([]rune, 0, len(text))
	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}

// summaryModel lists measured files with their coverage.
type summaryModel struct {
	width    int
	height   int
	fileList list.Model
	totals   m.Numbers
	opts     SummaryOptions
}

func newSummaryModel(rows []m.FileSummary, totals m.Numbers, opts SummaryOptions) summaryModel {
	items := make([]list.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, fileRow{name: row.Name, nums: row.Nums})
	}

	delegate := summaryDelegate{precision: opts.Precision}
	fileList := list.New(items, delegate, 80, 20)
	fileList.SetShowPagination(false)
	fileList.SetShowFilter(true)
	fileList.SetShowHelp(false)
	fileList.SetShowTitle(false)
	fileList.SetShowStatusBar(false)
	fileList.FilterInput.Placeholder = "Filter by path…"

	return summaryModel{
		fileList: fileList,
		totals:   totals,
		opts:     opts,
	}
}

func (sm summaryModel) Init() tea.Cmd {
	return nil
}

func (sm summaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		sm.width = msg.Width
		sm.height = msg.Height
		sm.fileList.SetWidth(sm.width)
		sm.fileList.SetHeight(listHeight(sm.height))

	case tea.KeyMsg:
		if sm.fileList.FilterState() != list.Filtering {
			switch msg.String() {
			case "q", "ctrl+c":
				return sm, tea.Quit
			}
		}

		var newList list.Model

		newList, cmd = sm.fileList.Update(msg)
		sm.fileList = newList

		return sm, cmd
	}

	return sm, cmd
}

func (sm summaryModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)

	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	title := titleStyle.Render("Coverage Summary")

	summary := summaryStyle.Render(fmt.Sprintf(
		"Total: %s   Files: %s   Statements: %s",
		accentStyle.Render(m.DisplayCovered(sm.totals.PercentCovered(), sm.opts.Precision)+"%"),
		accentStyle.Render(fmt.Sprintf("%d", len(sm.fileList.Items()))),
		accentStyle.Render(fmt.Sprintf("%d", sm.totals.NStatements)),
	))

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Width(sm.width)

	footer := footerStyle.Render("↑/k up • ↓/j down • g/G top/bottom • / filter • q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		summary,
		sm.fileList.View(),
		footer,
	)
}

// listHeight leaves room for the title, summary and footer rows.
func listHeight(screenHeight int) int {
	height := screenHeight - 5
	if height < 1 {
		height = 1
	}

	return height
}

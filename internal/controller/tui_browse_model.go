package controller

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/nedbat/covcode/internal/model"
)

// sourceLine is one list entry of the file browser.
type sourceLine struct {
	line m.LineData
}

func (s sourceLine) FilterValue() string {
	return s.line.Text
}

// Simple delegate for annotated source lines.
type browseDelegate struct{}

func (d browseDelegate) Height() int  { return 1 }
func (d browseDelegate) Spacing() int { return 0 }
func (d browseDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// categoryStyles colors a line by its classification.
var categoryStyles = map[m.LineCategory]lipgloss.Style{
	m.CategoryRun:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	m.CategoryMissing:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	m.CategoryPartial:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	m.CategoryExcluded: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
}

func (d browseDelegate) Render(w io.Writer, lm list.Model, index int, item list.Item) {
	src, ok := item.(sourceLine)
	if !ok {
		return
	}

	style, ok := categoryStyles[src.line.Category]
	if !ok {
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	}

	numberStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(6).Align(lipgloss.Right)

	if index == lm.Index() {
		style = style.Bold(true)
		numberStyle = numberStyle.Foreground(lipgloss.Color("15"))
	}

	marker := categoryMarker(src.line.Category)
	text := truncateToWidth(src.line.Text, lm.Width()-10)

	annotation := ""
	if len(src.line.ShortAnnotations) > 0 {
		annotation = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Render("  ↛ " + src.line.ShortAnnotations[0])
	}

	line := fmt.Sprintf("%s %s %s%s",
		numberStyle.Render(fmt.Sprintf("%d", src.line.Number)),
		marker,
		style.Render(text),
		annotation,
	)
	_, _ = fmt.Fprint(w, line)
}

// browseModel shows one file's source with coverage classification.
type browseModel struct {
	width    int
	height   int
	lineList list.Model
	fd       m.FileData
	opts     SummaryOptions
}

func newBrowseModel(fd m.FileData, opts SummaryOptions) browseModel {
	items := make([]list.Item, 0, len(fd.Lines))
	for _, line := range fd.Lines {
		items = append(items, sourceLine{line: line})
	}

	lineList := list.New(items, browseDelegate{}, 80, 20)
	lineList.SetShowPagination(false)
	lineList.SetShowFilter(false)
	lineList.SetShowHelp(false)
	lineList.SetShowTitle(false)
	lineList.SetShowStatusBar(false)

	return browseModel{
		lineList: lineList,
		fd:       fd,
		opts:     opts,
	}
}

func (bm browseModel) Init() tea.Cmd {
	return nil
}

func (bm browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		bm.width = msg.Width
		bm.height = msg.Height
		bm.lineList.SetWidth(bm.width)
		bm.lineList.SetHeight(listHeight(bm.height))

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return bm, tea.Quit
		}

		var newList list.Model

		newList, cmd = bm.lineList.Update(msg)
		bm.lineList = newList

		return bm, cmd
	}

	return bm, cmd
}

func (bm browseModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)

	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	title := titleStyle.Render(bm.fd.RelativePath)

	summary := summaryStyle.Render(fmt.Sprintf(
		"Coverage: %s   Statements: %s   Missing: %s",
		accentStyle.Render(m.DisplayCovered(bm.fd.Nums.PercentCovered(), bm.opts.Precision)+"%"),
		accentStyle.Render(fmt.Sprintf("%d", bm.fd.Nums.NStatements)),
		accentStyle.Render(fmt.Sprintf("%d", bm.fd.Nums.NMissing)),
	))

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Width(bm.width)

	footer := footerStyle.Render("↑/k up • ↓/j down • g/G top/bottom • q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		summary,
		bm.lineList.View(),
		footer,
	)
}

package controller

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	m "stubber.dev/pkg/stubber/internal/model"
)

// staticRowLimit is the largest listing printed without the interactive view.
const staticRowLimit = 20

var (
	tuiTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("36"))

	tuiHelpStyle = lipgloss.NewStyle().
			Faint(true)

	tuiBaseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
)

// TUI implements UI using Bubble Tea for interactive display. Short
// listings and all non-listing output fall through to SimpleUI.
type TUI struct {
	*SimpleUI
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{SimpleUI: NewSimpleUI(cmd)}
}

// DisplayGenerated shows created stubs in a scrollable table when the
// listing is long enough to need one.
func (p *TUI) DisplayGenerated(ctx context.Context, created []m.Stub, scanned int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(created) <= staticRowLimit {
		return p.SimpleUI.DisplayGenerated(ctx, created, scanned)
	}

	model := newStubListModel(created, scanned)

	if f, ok := p.cmd.OutOrStdout().(*os.File); ok {
		if _, height, err := term.GetSize(int(f.Fd())); err == nil {
			model = model.setHeight(height)
		}
	}

	program := tea.NewProgram(model, tea.WithOutput(p.cmd.OutOrStdout()), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// stubListModel is the Bubble Tea model for the created-stub listing.
type stubListModel struct {
	table   table.Model
	scanned int
	created int
}

func newStubListModel(created []m.Stub, scanned int) stubListModel {
	columns := []table.Column{
		{Title: "Stub", Width: 48},
		{Title: "Kind", Width: 8},
		{Title: "Source", Width: 32},
	}

	rows := make([]table.Row, 0, len(created))
	for _, stub := range created {
		rows = append(rows, table.Row{string(stub.FullPath), string(stub.Kind), string(stub.Source)})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(staticRowLimit),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(styles)

	return stubListModel{
		table:   t,
		scanned: scanned,
		created: len(created),
	}
}

func (sm stubListModel) setHeight(height int) stubListModel {
	// Reserve space for the title, footer and help lines.
	reserved := 6

	available := height - reserved
	if available < 3 {
		available = 3
	}

	sm.table.SetHeight(available)

	return sm
}

func (sm stubListModel) Init() tea.Cmd {
	return nil
}

func (sm stubListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return sm.setHeight(msg.Height), nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return sm, tea.Quit
		}
	}

	var cmd tea.Cmd

	sm.table, cmd = sm.table.Update(msg)

	return sm, cmd
}

func (sm stubListModel) View() string {
	title := tuiTitleStyle.Render(fmt.Sprintf("Created %d stub(s) from %d source file(s)", sm.created, sm.scanned))
	help := tuiHelpStyle.Render("j/k scroll · q quit")

	return title + "\n" + tuiBaseStyle.Render(sm.table.View()) + "\n" + help + "\n"
}

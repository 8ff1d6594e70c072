package scenes

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/erickbogarin/amortiza/internal/domain"
	"github.com/erickbogarin/amortiza/internal/output"
	"github.com/erickbogarin/amortiza/internal/tui/tuistyles"
)

// Variant picks which of the two schedules a scene shows
type Variant int

const (
	WithExtras Variant = iota
	WithoutExtras
)

func (v Variant) String() string {
	if v == WithoutExtras {
		return "without extras"
	}
	return "with extras"
}

var toggleVariant = key.NewBinding(
	key.WithKeys("v"),
	key.WithHelp("v", "toggle extras"),
)

// ScheduleModel browses one schedule month by month in a table
type ScheduleModel struct {
	sim     *output.Simulation
	variant Variant
	table   table.Model
	width   int
	height  int
}

func NewScheduleModel() *ScheduleModel {
	t := table.New(
		table.WithColumns(scheduleColumns()),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	styles := table.DefaultStyles()
	styles.Header = tuistyles.TableHeaderStyle
	styles.Selected = tuistyles.TableSelectedStyle
	t.SetStyles(styles)

	return &ScheduleModel{table: t}
}

func scheduleColumns() []table.Column {
	return []table.Column{
		{Title: "Month", Width: 6},
		{Title: "Principal", Width: 14},
		{Title: "Interest", Width: 14},
		{Title: "Installment", Width: 14},
		{Title: "Extra", Width: 14},
		{Title: "Balance", Width: 16},
	}
}

// SetSimulation selects the simulation whose schedule is shown
func (m *ScheduleModel) SetSimulation(sim *output.Simulation) {
	m.sim = sim
	m.refresh()
	m.table.GotoTop()
}

// Variant reports which schedule is shown
func (m *ScheduleModel) Variant() Variant {
	return m.variant
}

// SetSize fits the table to the space left by the title and status bars
func (m *ScheduleModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(height-4, 3))
}

// Rows returns the rows currently loaded in the table
func (m *ScheduleModel) Rows() []table.Row {
	return m.table.Rows()
}

// Cursor returns the selected row index
func (m *ScheduleModel) Cursor() int {
	return m.table.Cursor()
}

func (m *ScheduleModel) schedule() domain.Schedule {
	if m.sim == nil || m.sim.Result == nil {
		return nil
	}
	if m.variant == WithoutExtras {
		return m.sim.Result.ScheduleWithoutExtras
	}
	return m.sim.Result.ScheduleWithExtras
}

func (m *ScheduleModel) refresh() {
	schedule := m.schedule()
	rows := make([]table.Row, 0, len(schedule))
	for _, inst := range schedule {
		extra := ""
		if inst.ExtraPaid.IsPositive() {
			extra = output.FormatMoney(inst.ExtraPaid)
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", inst.Month),
			output.FormatMoney(inst.Principal),
			output.FormatMoney(inst.Interest),
			output.FormatMoney(inst.TotalDue),
			extra,
			output.FormatMoney(inst.RemainingBalance),
		})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m *ScheduleModel) Update(msg tea.Msg) (*ScheduleModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, toggleVariant) {
		if m.variant == WithExtras {
			m.variant = WithoutExtras
		} else {
			m.variant = WithExtras
		}
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScheduleModel) View() string {
	if m.sim == nil {
		return tuistyles.InfoStyle.Render("No simulation selected")
	}
	title := tuistyles.TitleStyle.Render(fmt.Sprintf("%s, schedule %s (%d months)", m.sim.Name, m.variant, len(m.schedule())))
	hint := tuistyles.InfoStyle.Render("↑/↓ scroll • v toggle extras")
	return lipgloss.JoinVertical(lipgloss.Left, title, m.table.View(), hint)
}

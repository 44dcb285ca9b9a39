package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Radaos/griddle/internal/grid/entity"
	"github.com/Radaos/griddle/internal/grid/usecase"
)

type promptKind int

const (
	promptNone promptKind = iota
	promptLoad
	promptSave
	promptExport
	promptFind
)

// model is the interactive grid editor over a single edit session.
//
// Row 0 is the header row. The header is rendered distinctly but is a regular
// row as far as editing and search are concerned.
type model struct {
	session *usecase.Session
	title   string

	rows      int
	cols      int
	mask      entity.EditMask
	colWidths []int

	cursorRow    int
	cursorCol    int
	scrollOffset int
	colOffset    int
	width        int
	height       int

	editing   bool
	editValue string

	prompt    promptKind
	input     textinput.Model
	lastQuery string

	errMsg  string
	infoMsg string

	final    entity.Table
	finished bool
}

func newModel(session *usecase.Session, title string) model {
	input := textinput.New()
	input.CharLimit = 256

	m := model{
		session: session,
		title:   title,
		input:   input,
		width:   80,
		height:  24,
	}
	m.refresh()
	return m
}

// refresh re-reads the committed table's dimensions, mask, and column widths.
// Called after anything that can replace the table, such as a load.
func (m *model) refresh() {
	table := m.session.Snapshot()
	m.rows = table.Rows()
	m.cols = table.Cols()
	m.mask = m.session.Mask()

	m.colWidths = make([]int, m.cols)
	for ci := 0; ci < m.cols; ci++ {
		w := 6
		for ri := 0; ri < m.rows; ri++ {
			if n := len(table.Cell(ri, ci)); n > w {
				w = n
			}
		}
		if w > 32 {
			w = 32
		}
		m.colWidths[ci] = w
	}

	if m.cursorRow >= m.rows {
		m.cursorRow = m.rows - 1
	}
	if m.cursorCol >= m.cols {
		m.cursorCol = m.cols - 1
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if m.prompt != promptNone {
			return m.updatePrompt(msg)
		}
		if m.editing {
			return m.updateEditMode(msg)
		}
		return m.updateNavMode(msg)
	}
	return m, nil
}

func (m model) updateNavMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errMsg = ""
	m.infoMsg = ""

	switch msg.String() {
	case "up", "k":
		if m.cursorRow > 0 {
			m.cursorRow--
			m.ensureRowVisible()
		}
	case "down", "j":
		if m.cursorRow < m.rows-1 {
			m.cursorRow++
			m.ensureRowVisible()
		}
	case "left", "h":
		if m.cursorCol > 0 {
			m.cursorCol--
			m.ensureColVisible()
		}
	case "right", "l":
		if m.cursorCol < m.cols-1 {
			m.cursorCol++
			m.ensureColVisible()
		}
	case "g":
		m.cursorRow = 0
		m.scrollOffset = 0
	case "G":
		m.cursorRow = m.rows - 1
		m.ensureRowVisible()
	case "pgup":
		m.cursorRow -= m.visibleRowCount()
		if m.cursorRow < 0 {
			m.cursorRow = 0
		}
		m.ensureRowVisible()
	case "pgdown":
		m.cursorRow += m.visibleRowCount()
		if m.cursorRow >= m.rows {
			m.cursorRow = m.rows - 1
		}
		m.ensureRowVisible()
	case "enter", "e":
		if !m.mask.Editable(m.cursorCol) {
			m.errMsg = fmt.Sprintf("column %d is read-only", m.cursorCol)
			return m, nil
		}
		m.editing = true
		m.editValue = m.session.Cell(m.cursorRow, m.cursorCol)
	case "ctrl+o":
		return m.openPrompt(promptLoad, "load csv from: ")
	case "ctrl+s":
		return m.openPrompt(promptSave, "save csv to: ")
	case "ctrl+e":
		return m.openPrompt(promptExport, "export xlsx to: ")
	case "/":
		return m.openPrompt(promptFind, "find: ")
	case "n":
		if m.lastQuery != "" {
			m.find(m.lastQuery)
		}
	case "q", "ctrl+c", "esc":
		table, err := m.session.Exit()
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.final = table
		m.finished = true
		return m, tea.Quit
	}
	return m, nil
}

func (m model) updateEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.editing = false
		if err := m.session.EditCell(m.cursorRow, m.cursorCol, m.editValue); err != nil {
			m.errMsg = err.Error()
		}
	case "esc":
		m.editing = false
		m.editValue = ""
	case "backspace":
		if len(m.editValue) > 0 {
			m.editValue = m.editValue[:len(m.editValue)-1]
		}
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.editValue += string(msg.Runes)
		}
	}
	return m, nil
}

func (m *model) openPrompt(kind promptKind, placeholder string) (tea.Model, tea.Cmd) {
	m.prompt = kind
	m.input.Prompt = placeholder
	m.input.SetValue("")
	m.input.Focus()
	return *m, textinput.Blink
}

func (m model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.prompt = promptNone
		m.input.Blur()
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		kind := m.prompt
		m.prompt = promptNone
		m.input.Blur()
		if value == "" {
			return m, nil
		}
		m.runPrompt(kind, value)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) runPrompt(kind promptKind, value string) {
	m.errMsg = ""
	m.infoMsg = ""

	switch kind {
	case promptLoad:
		if err := m.session.Load(value); err != nil {
			m.errMsg = err.Error()
			return
		}
		m.cursorRow, m.cursorCol = 0, 0
		m.scrollOffset, m.colOffset = 0, 0
		m.refresh()
		m.infoMsg = fmt.Sprintf("loaded %s (%dx%d)", value, m.rows, m.cols)
	case promptSave:
		if err := m.session.Save(value); err != nil {
			m.errMsg = err.Error()
			return
		}
		m.infoMsg = "saved " + value
	case promptExport:
		if err := m.session.ExportXLSX(value); err != nil {
			m.errMsg = err.Error()
			return
		}
		m.infoMsg = "exported " + value
	case promptFind:
		m.lastQuery = value
		m.find(value)
	}
}

func (m *model) find(query string) {
	cursor, found, err := m.session.FindNext(query)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	if !found {
		m.infoMsg = fmt.Sprintf("no match for %q", query)
		return
	}
	m.cursorRow = cursor.Row
	m.cursorCol = cursor.Col
	m.ensureRowVisible()
	m.ensureColVisible()
}

func (m *model) ensureRowVisible() {
	visRows := m.visibleRowCount()
	if m.cursorRow < m.scrollOffset {
		m.scrollOffset = m.cursorRow
	} else if m.cursorRow >= m.scrollOffset+visRows {
		m.scrollOffset = m.cursorRow - visRows + 1
	}
}

func (m *model) ensureColVisible() {
	if m.cursorCol < m.colOffset {
		m.colOffset = m.cursorCol
	}
	usedWidth := 0
	for i := m.colOffset; i <= m.cursorCol && i < len(m.colWidths); i++ {
		usedWidth += m.colWidths[i] + 3
	}
	for usedWidth > m.width-2 && m.colOffset < m.cursorCol {
		usedWidth -= m.colWidths[m.colOffset] + 3
		m.colOffset++
	}
}

func (m model) visibleRowCount() int {
	// title + header + separator + status + help
	h := m.height - 5
	if h < 1 {
		h = 1
	}
	return h
}

func (m model) visibleColumns() []int {
	var cols []int
	used := 0
	for ci := m.colOffset; ci < m.cols; ci++ {
		used += m.colWidths[ci] + 3
		if used > m.width-2 && len(cols) > 0 {
			break
		}
		cols = append(cols, ci)
	}
	return cols
}

func (m model) View() string {
	if m.finished {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")

	visibleCols := m.visibleColumns()

	// Header row, rendered from the table's first row.
	headerParts := make([]string, 0, len(visibleCols))
	for _, ci := range visibleCols {
		w := m.colWidths[ci]
		style := headerStyle
		if m.cursorRow == 0 && ci == m.cursorCol && !m.editing {
			style = cursorStyle
		}
		headerParts = append(headerParts, style.Width(w).Render(truncate(m.session.Cell(0, ci), w)))
	}
	b.WriteString(strings.Join(headerParts, " | "))
	b.WriteString("\n")

	sepParts := make([]string, 0, len(visibleCols))
	for _, ci := range visibleCols {
		sepParts = append(sepParts, strings.Repeat("-", m.colWidths[ci]))
	}
	b.WriteString(dimStyle.Render(strings.Join(sepParts, "-+-")))
	b.WriteString("\n")

	start := m.scrollOffset
	if start < 1 {
		start = 1
	}
	end := start + m.visibleRowCount()
	if end > m.rows {
		end = m.rows
	}

	for ri := start; ri < end; ri++ {
		rowParts := make([]string, 0, len(visibleCols))
		for _, ci := range visibleCols {
			w := m.colWidths[ci]
			isCursor := ri == m.cursorRow && ci == m.cursorCol

			if m.editing && isCursor {
				rowParts = append(rowParts, editingStyle.Width(w).Render(truncate(m.editValue+"█", w)))
				continue
			}

			style := cellStyle
			switch {
			case isCursor:
				style = cursorStyle
			case !m.mask.Editable(ci):
				style = readOnlyStyle
			}
			rowParts = append(rowParts, style.Width(w).Render(truncate(m.session.Cell(ri, ci), w)))
		}
		b.WriteString(strings.Join(rowParts, " | "))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.prompt != promptNone:
		b.WriteString(m.input.View())
	case m.errMsg != "":
		b.WriteString(errStyle.Render(m.errMsg))
	case m.infoMsg != "":
		b.WriteString(infoStyle.Render(m.infoMsg))
	default:
		b.WriteString(dimStyle.Render(fmt.Sprintf(
			"cell %d,%d of %dx%d   enter edit  ctrl+o load  ctrl+s save  ctrl+e export  / find  q quit",
			m.cursorRow, m.cursorCol, m.rows, m.cols,
		)))
	}

	return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
}

// truncate shortens s to at most w runes, never splitting a multibyte rune.
func truncate(s string, w int) string {
	if w < 1 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= w {
		return s
	}
	if w == 1 {
		return string(runes[:1])
	}
	return string(runes[:w-1]) + "…"
}

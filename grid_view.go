package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"gridedit/internal/grid"
	"gridedit/internal/gridstate"
)

const (
	cellPadding    = 1
	minColumnWidth = 3
	// title, top border, header, separator
	gridHeaderRows = 4
)

// Viewport handles horizontal scrolling for the grid
type Viewport struct {
	scrollX     int
	screen      tcell.Screen
	tableWidth  int
	screenWidth int
}

// SetDimensions sets the table and screen dimensions and clamps the scroll offset
func (v *Viewport) SetDimensions(tableWidth, screenWidth int) {
	v.tableWidth = tableWidth
	v.screenWidth = screenWidth
	if v.tableWidth <= v.screenWidth {
		v.scrollX = 0
		return
	}
	v.scrollX = min(v.scrollX, v.tableWidth-v.screenWidth)
}

// SetContent calls screen.SetContent with x adjusted by scrollX
func (v *Viewport) SetContent(x, y int, ch rune, combc []rune, style tcell.Style) {
	if v.screen != nil {
		v.screen.SetContent(x-v.scrollX, y, ch, combc, style)
	}
}

func (v *Viewport) ScrollLeft() {
	if v.scrollX > 0 {
		v.scrollX--
	}
}

func (v *Viewport) ScrollRight() {
	if v.tableWidth > v.screenWidth && v.scrollX < v.tableWidth-v.screenWidth {
		v.scrollX++
	}
}

func (v *Viewport) ScrollX() int {
	return v.scrollX
}

// EnsureVisible adjusts scrollX so that [startX, endX) fits in screenWidth columns.
func (v *Viewport) EnsureVisible(startX, endX, screenWidth int) {
	switch {
	case endX-startX >= screenWidth:
		v.scrollX = startX
	case startX < v.scrollX:
		v.scrollX = startX
	case endX > v.scrollX+screenWidth:
		v.scrollX = endX - screenWidth
	}
	v.scrollX = max(v.scrollX, 0)
}

// GridView draws a grid.View as a bordered table with a heavy header
// separator. It tracks a cell cursor; the selected record is owned by the
// editor state and arrives through the view.
type GridView struct {
	*tview.Box

	title   string
	vimMode bool
	widths  []int
	view    grid.View

	cursorRow int
	cursorCol int

	borderColor   tcell.Color
	headerColor   tcell.Color
	headerBgColor tcell.Color

	cursorFunc      func(row, col int)
	clickFunc       func(row, col int)
	doubleClickFunc func(row, col int)

	lastClickRow int
	lastClickCol int

	resizingColumn   int
	resizeStartX     int
	resizeStartWidth int

	viewport *Viewport
}

func NewGridView(title string) *GridView {
	return &GridView{
		Box:            tview.NewBox(),
		title:          title,
		borderColor:    tcell.ColorWhite,
		headerColor:    tcell.ColorWhite,
		headerBgColor:  tcell.ColorDarkSlateGray,
		lastClickRow:   -1,
		lastClickCol:   -1,
		resizingColumn: -1,
		viewport:       &Viewport{},
	}
}

// SetView replaces the rendered rows. Column widths changed by the user are
// kept as long as the column count does not change.
func (g *GridView) SetView(v grid.View) *GridView {
	if len(g.widths) != len(v.Headers) {
		g.widths = make([]int, len(v.Headers))
		for i, h := range v.Headers {
			g.widths[i] = h.Width
		}
	}
	g.view = v
	g.cursorRow = min(g.cursorRow, max(len(v.Rows)-1, 0))
	g.cursorCol = min(g.cursorCol, max(len(v.Headers)-1, 0))
	return g
}

func (g *GridView) SetVimMode(enabled bool) *GridView {
	g.vimMode = enabled
	return g
}

// SetCursorFunc sets the handler called when keyboard navigation moves the cursor.
func (g *GridView) SetCursorFunc(handler func(row, col int)) *GridView {
	g.cursorFunc = handler
	return g
}

// SetClickFunc sets the handler called when a data cell is clicked.
func (g *GridView) SetClickFunc(handler func(row, col int)) *GridView {
	g.clickFunc = handler
	return g
}

// SetDoubleClickFunc sets the handler called when a data cell is double-clicked.
func (g *GridView) SetDoubleClickFunc(handler func(row, col int)) *GridView {
	g.doubleClickFunc = handler
	return g
}

// Cursor returns the cursor position as view row and column indices.
func (g *GridView) Cursor() (row, col int) {
	return g.cursorRow, g.cursorCol
}

// SetCursor moves the cursor without notifying anyone.
func (g *GridView) SetCursor(row, col int) *GridView {
	if row >= 0 && row < len(g.view.Rows) {
		g.cursorRow = row
	}
	if col >= 0 && col < len(g.widths) {
		g.cursorCol = col
	}
	g.ensureColumnVisible(g.cursorCol)
	return g
}

// moveCursor moves the cursor and reports the move to the cursor handler.
func (g *GridView) moveCursor(row, col int) {
	if row < 0 || row >= len(g.view.Rows) || col < 0 || col >= len(g.widths) {
		return
	}
	g.SetCursor(row, col)
	if g.cursorFunc != nil {
		g.cursorFunc(row, col)
	}
}

// RowID returns the record id shown at view row, if any.
func (g *GridView) RowID(row int) (int64, bool) {
	if row < 0 || row >= len(g.view.Rows) {
		return 0, false
	}
	return g.view.Rows[row].ID, true
}

func (g *GridView) ColumnWidth(col int) int {
	if col < 0 || col >= len(g.widths) {
		return 0
	}
	return g.widths[col]
}

func (g *GridView) SetColumnWidth(col, width int) *GridView {
	if col >= 0 && col < len(g.widths) {
		g.widths[col] = max(minColumnWidth, width)
	}
	return g
}

func (g *GridView) tableWidth() int {
	width := 2
	for _, w := range g.widths {
		width += w + 2*cellPadding
	}
	return width + max(len(g.widths)-1, 0)
}

// ColumnPosition returns the table-relative start and end x of a column,
// padding included. endX is exclusive.
func (g *GridView) ColumnPosition(col int) (startX, endX int) {
	if col < 0 || col >= len(g.widths) {
		return 0, 0
	}
	pos := 1
	for i := 0; i < col; i++ {
		pos += g.widths[i] + 2*cellPadding + 1
	}
	return pos, pos + g.widths[col] + 2*cellPadding
}

// CellRect returns the screen position and width of a cell's padded area.
func (g *GridView) CellRect(row, col int) (x, y, width int) {
	innerX, innerY, _, _ := g.GetInnerRect()
	startX, endX := g.ColumnPosition(col)
	return innerX + startX - g.viewport.ScrollX(), innerY + gridHeaderRows + row, endX - startX
}

func (g *GridView) ensureColumnVisible(col int) {
	_, _, width, _ := g.GetInnerRect()
	if width <= 0 || col < 0 || col >= len(g.widths) {
		return
	}
	startX, endX := g.ColumnPosition(col)
	g.viewport.EnsureVisible(startX-1, endX+1, width)
}

// Draw renders the grid
func (g *GridView) Draw(screen tcell.Screen) {
	g.Box.DrawForSubclass(screen, g)
	x, y, width, height := g.GetInnerRect()
	if len(g.widths) == 0 || width <= 0 || height <= 0 {
		return
	}

	g.viewport.screen = screen
	tableWidth := g.tableWidth()
	g.viewport.SetDimensions(tableWidth, width)

	g.drawTitle(x, y, tableWidth)
	g.drawRule(x, y+1, '┌', '─', '┬', '┐')
	if height > 2 {
		g.drawHeaderRow(x, y+2)
	}
	if height > 3 {
		g.drawRule(x, y+3, '┝', '━', '┿', '┥')
	}

	currentY := y + gridHeaderRows
	for i := range g.view.Rows {
		if currentY >= y+height {
			return
		}
		g.drawDataRow(x, currentY, i)
		currentY++
	}
	if currentY < y+height {
		g.drawRule(x, currentY, '└', '─', '┴', '┘')
	}
}

func (g *GridView) drawTitle(x, y, tableWidth int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	left := fmt.Sprintf(" %s · %d ", g.title, len(g.view.Rows))
	right := ""
	if g.vimMode {
		right = "vim mode "
	}
	for i := 0; i < tableWidth; i++ {
		g.viewport.SetContent(x+i, y, ' ', nil, style)
	}
	g.viewport.drawText(x, y, left, style)
	g.viewport.drawText(x+tableWidth-len(right), y, right, style)
}

func (g *GridView) drawRule(x, y int, left, fill, junction, right rune) {
	style := tcell.StyleDefault.Foreground(g.borderColor)
	g.viewport.SetContent(x, y, left, nil, style)
	pos := x + 1
	for i, w := range g.widths {
		for j := 0; j < w+2*cellPadding; j++ {
			g.viewport.SetContent(pos+j, y, fill, nil, style)
		}
		pos += w + 2*cellPadding
		if i < len(g.widths)-1 {
			g.viewport.SetContent(pos, y, junction, nil, style)
			pos++
		}
	}
	g.viewport.SetContent(pos, y, right, nil, style)
}

func (g *GridView) drawHeaderRow(x, y int) {
	border := tcell.StyleDefault.Foreground(g.borderColor)
	style := tcell.StyleDefault.Foreground(g.headerColor).Background(g.headerBgColor)

	g.viewport.SetContent(x, y, '│', nil, border)
	pos := x + 1
	for i, h := range g.view.Headers {
		w := g.widths[i]
		g.viewport.drawText(pos, y, " "+padCellToWidth(h.Label, w)+" ", style.Bold(true))
		pos += w + 2*cellPadding
		g.viewport.SetContent(pos, y, '│', nil, border)
		pos++
	}
}

func (g *GridView) cellStyle(row grid.Row, cell grid.Cell, rowIdx, col int) tcell.Style {
	style := tcell.StyleDefault
	switch {
	case cell.Mode != gridstate.Viewing:
		style = style.Background(tcell.ColorRoyalBlue).Foreground(tcell.ColorWhite)
	case rowIdx == g.cursorRow && col == g.cursorCol:
		style = style.Background(tcell.ColorBlue).Foreground(tcell.ColorWhite)
	case row.Selected:
		style = style.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack)
	}
	if cell.Text.Emphasis {
		style = style.Bold(true)
	}
	return style
}

func (g *GridView) drawDataRow(x, y, rowIdx int) {
	row := g.view.Rows[rowIdx]
	border := tcell.StyleDefault.Foreground(g.borderColor)
	sep := border
	if row.Selected {
		sep = sep.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack)
	}

	g.viewport.SetContent(x, y, '│', nil, border)
	pos := x + 1
	for i, cell := range row.Cells {
		w := g.widths[i]
		g.viewport.drawText(pos, y, " "+padCellToWidth(cell.Text.Value, w)+" ", g.cellStyle(row, cell, rowIdx, i))
		pos += w + 2*cellPadding
		if i < len(row.Cells)-1 {
			g.viewport.SetContent(pos, y, '│', nil, sep)
		} else {
			g.viewport.SetContent(pos, y, '│', nil, border)
		}
		pos++
	}
}

// InputHandler moves the cursor with the arrow keys
func (g *GridView) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return g.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		switch event.Key() {
		case tcell.KeyUp:
			g.moveCursor(g.cursorRow-1, g.cursorCol)
		case tcell.KeyDown:
			g.moveCursor(g.cursorRow+1, g.cursorCol)
		case tcell.KeyLeft:
			g.moveCursor(g.cursorRow, g.cursorCol-1)
		case tcell.KeyRight:
			g.moveCursor(g.cursorRow, g.cursorCol+1)
		case tcell.KeyHome:
			g.moveCursor(g.cursorRow, 0)
		case tcell.KeyEnd:
			g.moveCursor(g.cursorRow, len(g.widths)-1)
		}
	})
}

// MouseHandler selects on click, edits on double-click, resizes columns on
// separator drags and scrolls horizontally.
func (g *GridView) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return g.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
		x, y := event.Position()
		if !g.InRect(x, y) && g.resizingColumn < 0 {
			return false, nil
		}
		if breadcrumbs != nil && action != tview.MouseMove {
			breadcrumbs.RecordMouse(mouseActionString(action))
		}

		switch action {
		case tview.MouseLeftDown:
			setFocus(g)
			if col := g.ColumnSeparatorAt(x, y); col >= 0 {
				g.resizingColumn = col
				g.resizeStartX = x
				g.resizeStartWidth = g.widths[col]
				return true, g
			}
			return true, nil
		case tview.MouseMove:
			if g.resizingColumn >= 0 {
				g.SetColumnWidth(g.resizingColumn, g.resizeStartWidth+x-g.resizeStartX)
				return true, g
			}
		case tview.MouseLeftUp:
			if g.resizingColumn >= 0 {
				g.resizingColumn = -1
				return true, nil
			}
		case tview.MouseLeftClick:
			row, col := g.CellAt(x, y)
			if row >= 0 {
				g.SetCursor(row, col)
				if g.clickFunc != nil {
					g.clickFunc(row, col)
				}
			}
			g.lastClickRow, g.lastClickCol = row, col
			return true, nil
		case tview.MouseLeftDoubleClick:
			row, col := g.CellAt(x, y)
			if row >= 0 && row == g.lastClickRow && col == g.lastClickCol && g.doubleClickFunc != nil {
				g.doubleClickFunc(row, col)
				g.lastClickRow, g.lastClickCol = -1, -1
			}
			return true, nil
		case tview.MouseScrollLeft:
			g.viewport.ScrollLeft()
			return true, nil
		case tview.MouseScrollRight:
			g.viewport.ScrollRight()
			return true, nil
		case tview.MouseScrollUp:
			g.moveCursor(g.cursorRow-1, g.cursorCol)
			return true, nil
		case tview.MouseScrollDown:
			g.moveCursor(g.cursorRow+1, g.cursorCol)
			return true, nil
		}
		return false, nil
	})
}

// CellAt returns the view row and column under a screen position, or (-1, -1).
func (g *GridView) CellAt(screenX, screenY int) (row, col int) {
	x, y, width, height := g.GetInnerRect()
	if screenX < x || screenX >= x+width || screenY < y || screenY >= y+height {
		return -1, -1
	}
	row = screenY - y - gridHeaderRows
	if row < 0 || row >= len(g.view.Rows) {
		return -1, -1
	}
	relX := screenX - x + g.viewport.ScrollX()
	for i := range g.widths {
		startX, endX := g.ColumnPosition(i)
		if relX >= startX && relX < endX {
			return row, i
		}
	}
	return -1, -1
}

// ColumnSeparatorAt returns the column left of the separator under a screen
// position, allowing one cell of slack either side, or -1.
func (g *GridView) ColumnSeparatorAt(screenX, screenY int) int {
	x, y, width, _ := g.GetInnerRect()
	if screenX < x || screenX >= x+width {
		return -1
	}
	relY := screenY - y
	if relY != 2 && relY < gridHeaderRows {
		return -1
	}
	relX := screenX - x + g.viewport.ScrollX()
	for i := 0; i < len(g.widths)-1; i++ {
		_, endX := g.ColumnPosition(i)
		if relX >= endX-1 && relX <= endX+1 {
			return i
		}
	}
	return -1
}

// mouseActionString converts tview.MouseAction to a human-readable string
func mouseActionString(action tview.MouseAction) string {
	switch action {
	case tview.MouseLeftDown:
		return "LeftDown"
	case tview.MouseLeftUp:
		return "LeftUp"
	case tview.MouseLeftClick:
		return "LeftClick"
	case tview.MouseLeftDoubleClick:
		return "LeftDoubleClick"
	case tview.MouseScrollUp:
		return "ScrollUp"
	case tview.MouseScrollDown:
		return "ScrollDown"
	case tview.MouseScrollLeft:
		return "ScrollLeft"
	case tview.MouseScrollRight:
		return "ScrollRight"
	case tview.MouseMove:
		return "Move"
	default:
		return fmt.Sprintf("Unknown(%d)", action)
	}
}

package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/fbrowse/internal/textutil"
	"github.com/mattn/go-runewidth"
)

const appName = "fbrowse"

// Renderer draws a View onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	theme  ColorTheme
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// Render draws the entire frame.
func (r *Renderer) Render(v View) {
	r.screen.Clear()
	w, h := r.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}

	r.drawHeader(v, w)
	if v.QueryVisible && h > 1 {
		r.drawQueryLine(v, w)
	}
	r.drawList(v, w, h)
	r.drawFooter(v, w, h)

	r.screen.Show()
}

func (r *Renderer) drawHeader(v View, w int) {
	style := tcell.StyleDefault.Foreground(r.theme.HeaderFg).Bold(true)
	x := r.drawText(0, 0, w, appName, style)
	if x < w {
		x++
	}
	r.drawText(x, 0, w-x, textutil.Sanitize(v.Title), tcell.StyleDefault.Foreground(r.theme.HeaderFg))
}

func (r *Renderer) drawQueryLine(v View, w int) {
	style := tcell.StyleDefault.Foreground(r.theme.QueryFg)
	text := "/" + textutil.Sanitize(v.Query)
	x := r.drawText(0, 1, w, text, style)
	if v.Editing {
		if x < w {
			r.screen.SetContent(x, 1, ' ', nil, style.Reverse(true))
		}
		x++
	}
	if v.SearchState != "" {
		state := "  " + v.SearchState
		r.drawText(x, 1, w-x, state, tcell.StyleDefault.Foreground(r.theme.DetailFg))
	}
}

func (r *Renderer) drawList(v View, w, h int) {
	top := ListTop(v)
	rows := ListHeight(v, h)
	if rows == 0 {
		return
	}

	if len(v.Rows) == 0 {
		if v.Empty != "" {
			r.drawText(1, top, w-1, v.Empty, tcell.StyleDefault.Foreground(r.theme.DetailFg))
		}
		return
	}

	for i := 0; i < rows; i++ {
		idx := v.Scroll + i
		if idx >= len(v.Rows) {
			break
		}
		r.drawRow(v.Rows[idx], idx == v.Cursor, top+i, w)
	}
}

func (r *Renderer) drawRow(row Row, cursor bool, y, w int) {
	rowStyle := tcell.StyleDefault
	switch {
	case row.Selected:
		rowStyle = rowStyle.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
	case cursor:
		rowStyle = rowStyle.Background(r.theme.CursorBg).Foreground(r.theme.CursorFg)
	}

	nameStyle := rowStyle
	if !row.Selected && !cursor {
		switch {
		case row.IsSymlink:
			nameStyle = nameStyle.Foreground(r.theme.SymlinkFg)
		case row.IsDir:
			nameStyle = nameStyle.Foreground(r.theme.DirectoryFg)
		default:
			nameStyle = nameStyle.Foreground(r.theme.FileFg)
		}
	}
	if cursor {
		nameStyle = nameStyle.Bold(true)
	}

	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, ' ', nil, rowStyle)
	}

	marker := "  "
	if row.Selected {
		marker = "* "
	}
	x := r.drawText(0, y, w, marker, rowStyle)

	name := textutil.Sanitize(row.Name)
	if row.IsDir {
		name += "/"
	}

	detail := textutil.Sanitize(row.Detail)
	detailWidth := runewidth.StringWidth(detail)
	nameWidth := w - x
	if detail != "" && detailWidth+2 < nameWidth {
		nameWidth -= detailWidth + 1
		detailStyle := rowStyle
		if !row.Selected && !cursor {
			detailStyle = detailStyle.Foreground(r.theme.DetailFg)
		}
		r.drawText(w-detailWidth, y, detailWidth, detail, detailStyle)
	}
	r.drawText(x, y, nameWidth, textutil.Truncate(name, nameWidth), nameStyle)
}

func (r *Renderer) drawFooter(v View, w, h int) {
	if h >= footerLines+1 {
		r.drawText(0, h-2, w, textutil.Truncate(textutil.Sanitize(v.Details), w),
			tcell.StyleDefault.Foreground(r.theme.DetailFg))
	}

	style := tcell.StyleDefault.Foreground(r.theme.FooterFg)
	if v.StatusError {
		style = style.Foreground(r.theme.ErrorFg)
	}
	r.drawText(0, h-1, w, textutil.Truncate(textutil.Sanitize(v.Status), w), style)
}

// drawText draws text from startX, clipped to maxWidth cells, and returns the
// column after the last cell written. Zero-width runes combine with the
// preceding cell.
func (r *Renderer) drawText(startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	runes := []rune(text)
	i := 0

	for i < len(runes) {
		mainc := runes[i]
		i++

		var combc []rune
		for i < len(runes) && runewidth.RuneWidth(runes[i]) == 0 {
			combc = append(combc, runes[i])
			i++
		}

		cw := runewidth.RuneWidth(mainc)
		if cw <= 0 {
			cw = 1
		}
		if x-startX+cw > maxWidth {
			break
		}
		r.screen.SetContent(x, y, mainc, combc, style)
		x += cw
	}

	return x
}

package render

// Row is one line of the listing or of the search results.
type Row struct {
	Name      string
	Detail    string // right-aligned: size or parent directory
	IsDir     bool
	IsSymlink bool
	Selected  bool
}

// View is everything the renderer needs for one frame.
type View struct {
	Title string

	// QueryVisible reserves the line under the header for the search query.
	QueryVisible bool
	Query        string
	Editing      bool
	SearchState  string

	Rows   []Row
	Cursor int
	Scroll int
	Empty  string // shown when Rows is empty

	Details     string
	Status      string
	StatusError bool
}

const footerLines = 2

// ListTop returns the first screen row used by the list.
func ListTop(v View) int {
	if v.QueryVisible {
		return 2
	}
	return 1
}

// ListHeight returns how many list rows fit on a screen of height h.
func ListHeight(v View, h int) int {
	n := h - footerLines - ListTop(v)
	if n < 0 {
		return 0
	}
	return n
}

// RowAt maps a screen row to an index into v.Rows.
func RowAt(v View, h, y int) (int, bool) {
	top := ListTop(v)
	if y < top || y >= top+ListHeight(v, h) {
		return 0, false
	}
	idx := v.Scroll + y - top
	if idx < 0 || idx >= len(v.Rows) {
		return 0, false
	}
	return idx, true
}

// ClampScroll keeps cursor inside a window of height rows starting at scroll.
func ClampScroll(cursor, scroll, rows, total int) int {
	if rows <= 0 || total <= 0 {
		return 0
	}
	if cursor < scroll {
		scroll = cursor
	}
	if cursor >= scroll+rows {
		scroll = cursor - rows + 1
	}
	if maxScroll := total - rows; scroll > maxScroll {
		scroll = maxScroll
	}
	if scroll < 0 {
		scroll = 0
	}
	return scroll
}

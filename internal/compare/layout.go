package compare

// Layout is how the compare view arranges its panes.
type Layout int

const (
	LayoutTabs Layout = iota
	LayoutTwoColumns
	LayoutThreeColumns
	LayoutGrid
)

// String names the layout for the header and logs.
func (l Layout) String() string {
	switch l {
	case LayoutTwoColumns:
		return "two columns"
	case LayoutThreeColumns:
		return "three columns"
	case LayoutGrid:
		return "grid"
	default:
		return "tabs"
	}
}

// Columns returns panes per row; tabs show one pane at a time.
func (l Layout) Columns() int {
	switch l {
	case LayoutTwoColumns, LayoutGrid:
		return 2
	case LayoutThreeColumns:
		return 3
	default:
		return 1
	}
}

// LayoutFor picks the arrangement for n pieces. Narrow terminals always
// get tabs.
func LayoutFor(n int, narrow bool) Layout {
	if narrow {
		return LayoutTabs
	}
	switch n {
	case 2:
		return LayoutTwoColumns
	case 3:
		return LayoutThreeColumns
	case 4:
		return LayoutGrid
	default:
		return LayoutTabs
	}
}

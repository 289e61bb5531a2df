package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a named set of colors plus the chroma style used for code.
type Theme struct {
	Name string

	Background string // behind every view
	Surface    string // header and command bar
	SurfaceAlt string // toasts, tab bar
	FocusBg    string

	SelectionBg   string
	SelectionText string

	Border      string
	BorderMuted string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// CodeStyle names the chroma style used for code bodies.
	CodeStyle string

	// LanguageColors tints the language badge of a piece.
	LanguageColors map[string]string
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Background lipgloss.Style
	Surface    lipgloss.Style
	SurfaceAlt lipgloss.Style

	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style

	languageColors map[string]string
	background     string
	muted          string
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func bgFg(bg, text string) lipgloss.Style {
	return fg(text).Background(lipgloss.Color(bg))
}

// Styles builds the style set for t.
func (t Theme) Styles() Styles {
	return Styles{
		Background: lipgloss.NewStyle().Background(lipgloss.Color(t.Background)),
		Surface:    bgFg(t.Surface, t.Text),
		SurfaceAlt: bgFg(t.SurfaceAlt, t.Text),

		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),

		Header:   bgFg(t.Surface, t.Text).Padding(0, 1),
		Footer:   bgFg(t.Surface, t.Muted).Padding(0, 1),
		Logo:     fg(t.Accent).Bold(true),
		Selected: bgFg(t.SelectionBg, t.SelectionText),

		languageColors: t.LanguageColors,
		background:     t.Background,
		muted:          t.Muted,
	}
}

// LanguageStyle returns a badge style for a piece language. Unknown
// languages get the muted color.
func (s Styles) LanguageStyle(language string) lipgloss.Style {
	color := s.languageColors[strings.ToLower(strings.TrimSpace(language))]
	if color == "" {
		color = s.muted
	}
	return bgFg(color, s.background).Padding(0, 1)
}

// WithBackground paints every style except Selected onto bgColor, so text
// drawn inside a box never falls back to the terminal background.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	for _, st := range []*lipgloss.Style{
		&out.Background, &out.Surface, &out.SurfaceAlt,
		&out.Text, &out.MutedText, &out.FaintText, &out.AccentText,
		&out.SuccessText, &out.WarningText, &out.DangerText, &out.InfoText,
		&out.Header, &out.Footer, &out.Logo,
	} {
		*st = st.Background(bg)
	}
	return out
}

var themeOrder = []string{"Nord", "Gruvbox", "Dracula"}

var themes = map[string]Theme{
	"Nord":    nordTheme(),
	"Gruvbox": gruvboxTheme(),
	"Dracula": draculaTheme(),
}

// GetTheme returns the named theme, or Nord.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[themeOrder[0]]
}

// NextTheme returns the theme after current in the T cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames lists the themes in cycle order.
func ThemeNames() []string {
	return append([]string(nil), themeOrder...)
}

// accents are the hue slots language badges draw from.
type accents struct {
	blue, cyan, green, yellow, orange, red, purple, muted string
}

// languages maps the form's languages onto accent slots so every theme
// tints them the same way.
func (a accents) languages() map[string]string {
	return map[string]string{
		"c":          a.blue,
		"c++":        a.blue,
		"typescript": a.blue,
		"go":         a.cyan,
		"dart":       a.cyan,
		"sql":        a.green,
		"python":     a.yellow,
		"javascript": a.yellow,
		"java":       a.orange,
		"swift":      a.orange,
		"rust":       a.orange,
		"ruby":       a.red,
		"c#":         a.purple,
		"kotlin":     a.purple,
		"php":        a.purple,
		"other":      a.muted,
		"":           a.muted,
	}
}

// https://www.nordtheme.com/docs/colors-and-palettes
func nordTheme() Theme {
	a := accents{
		blue: "#81A1C1", cyan: "#88C0D0", green: "#A3BE8C", yellow: "#EBCB8B",
		orange: "#D08770", red: "#BF616A", purple: "#B48EAD", muted: "#4C566A",
	}
	return Theme{
		Name:           "Nord",
		Background:     "#2E3440",
		Surface:        "#3B4252",
		SurfaceAlt:     "#434C5E",
		FocusBg:        "#434C5E",
		SelectionBg:    "#5E81AC",
		SelectionText:  "#ECEFF4",
		Border:         "#4C566A",
		BorderMuted:    "#3B4252",
		BorderFocus:    a.cyan,
		Text:           "#E5E9F0",
		Muted:          "#D8DEE9",
		Faint:          "#7B88A1",
		Accent:         a.cyan,
		Success:        a.green,
		Warning:        a.yellow,
		Danger:         a.red,
		Info:           "#8FBCBB",
		CodeStyle:      "nord",
		LanguageColors: a.languages(),
	}
}

// https://github.com/morhetz/gruvbox, dark variant
func gruvboxTheme() Theme {
	a := accents{
		blue: "#83a598", cyan: "#8ec07c", green: "#b8bb26", yellow: "#fabd2f",
		orange: "#fe8019", red: "#fb4934", purple: "#d3869b", muted: "#928374",
	}
	return Theme{
		Name:           "Gruvbox",
		Background:     "#1d2021",
		Surface:        "#282828",
		SurfaceAlt:     "#3c3836",
		FocusBg:        "#3c3836",
		SelectionBg:    "#504945",
		SelectionText:  "#fbf1c7",
		Border:         "#665c54",
		BorderMuted:    "#3c3836",
		BorderFocus:    a.yellow,
		Text:           "#ebdbb2",
		Muted:          "#a89984",
		Faint:          "#7c6f64",
		Accent:         a.yellow,
		Success:        a.green,
		Warning:        a.orange,
		Danger:         a.red,
		Info:           a.blue,
		CodeStyle:      "gruvbox",
		LanguageColors: a.languages(),
	}
}

// https://draculatheme.com/contribute
func draculaTheme() Theme {
	a := accents{
		blue: "#bd93f9", cyan: "#8be9fd", green: "#50fa7b", yellow: "#f1fa8c",
		orange: "#ffb86c", red: "#ff5555", purple: "#ff79c6", muted: "#6272a4",
	}
	return Theme{
		Name:           "Dracula",
		Background:     "#21222c",
		Surface:        "#282a36",
		SurfaceAlt:     "#343746",
		FocusBg:        "#343746",
		SelectionBg:    "#44475a",
		SelectionText:  "#f8f8f2",
		Border:         "#6272a4",
		BorderMuted:    "#343746",
		BorderFocus:    a.blue,
		Text:           "#f8f8f2",
		Muted:          "#bfbfbf",
		Faint:          a.muted,
		Accent:         a.blue,
		Success:        a.green,
		Warning:        a.orange,
		Danger:         a.red,
		Info:           a.cyan,
		CodeStyle:      "dracula",
		LanguageColors: a.languages(),
	}
}

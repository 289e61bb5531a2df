// Package render turns piece descriptions and code into terminal text.
//
// Descriptions are markdown and go through glamour. Code bodies are
// highlighted with chroma using the piece's language name; "Other" and
// unknown names fall back to content analysis and then to plain text.
package render

import (
	"bytes"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
)

const (
	defaultMarkdownStyle = "dark"
	defaultCodeStyle     = "nord"
	minWrap              = 20
)

// Renderer caches glamour renderers per wrap width. Safe for concurrent use.
type Renderer struct {
	markdownStyle string
	codeStyle     string

	mu       sync.Mutex
	markdown map[int]*glamour.TermRenderer
}

// New returns a Renderer. Empty style names use the defaults.
func New(markdownStyle, codeStyle string) *Renderer {
	if strings.TrimSpace(markdownStyle) == "" {
		markdownStyle = defaultMarkdownStyle
	}
	if strings.TrimSpace(codeStyle) == "" {
		codeStyle = defaultCodeStyle
	}
	return &Renderer{
		markdownStyle: markdownStyle,
		codeStyle:     codeStyle,
		markdown:      map[int]*glamour.TermRenderer{},
	}
}

// CodeStyle returns the chroma style name in use.
func (r *Renderer) CodeStyle() string { return r.codeStyle }

// Markdown renders src wrapped at width. Rendering errors return src as is.
func (r *Renderer) Markdown(src string, width int) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	if width < minWrap {
		width = minWrap
	}
	tr, err := r.markdownRenderer(width)
	if err != nil {
		return src
	}
	out, err := tr.Render(src)
	if err != nil {
		return src
	}
	return strings.Trim(out, "\n")
}

func (r *Renderer) markdownRenderer(width int) (*glamour.TermRenderer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tr, ok := r.markdown[width]; ok {
		return tr, nil
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStylePath(r.markdownStyle),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	r.markdown[width] = tr
	return tr, nil
}

// Code highlights src for language. It never fails: when highlighting is
// not possible the source is returned unchanged.
func (r *Renderer) Code(src, language string) string {
	if src == "" {
		return ""
	}
	lexer := LexerFor(language, src)
	if lexer == nil {
		return src
	}
	style := styles.Get(r.codeStyle)
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return src
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, src)
	if err != nil {
		return src
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, it); err != nil {
		return src
	}
	return strings.TrimRight(buf.String(), "\n")
}

// languageAliases maps the form's language names onto chroma lexer names
// where they differ.
var languageAliases = map[string]string{
	"c++":        "cpp",
	"c#":         "csharp",
	"javascript": "javascript",
	"typescript": "typescript",
}

// LexerFor resolves the lexer for a language name, falling back to content
// analysis. It returns nil when nothing matches.
func LexerFor(language, src string) chroma.Lexer {
	name := strings.ToLower(strings.TrimSpace(language))
	if alias, ok := languageAliases[name]; ok {
		name = alias
	}
	if name != "" && name != "other" {
		if l := lexers.Get(name); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(src); l != nil {
		return l
	}
	return nil
}

// LexerName reports which lexer Code would use, or "plaintext".
func LexerName(language, src string) string {
	if l := LexerFor(language, src); l != nil {
		return l.Config().Name
	}
	return "plaintext"
}

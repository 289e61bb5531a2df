package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/shrew/internal/codespace"
	"github.com/five82/shrew/internal/notify"
	"github.com/five82/shrew/internal/route"
)

// formKind selects what a form creates or edits.
type formKind int

const (
	formSpaceCreate formKind = iota
	formSpaceEdit
	formPieceCreate
	formPieceEdit
)

func (k formKind) title() string {
	switch k {
	case formSpaceEdit:
		return "Edit CodeSpace"
	case formPieceCreate:
		return "New Code Piece"
	case formPieceEdit:
		return "Edit Code Piece"
	default:
		return "New CodeSpace"
	}
}

func (k formKind) successMessage() string {
	switch k {
	case formSpaceEdit:
		return "CodeSpace updated"
	case formPieceCreate:
		return "Code piece created successfully"
	case formPieceEdit:
		return "Code piece updated"
	default:
		return "CodeSpace created successfully"
	}
}

func (k formKind) failureMessage() string {
	switch k {
	case formSpaceEdit, formPieceEdit:
		return "Update failed. Check your password."
	case formPieceCreate:
		return "Failed to create code piece"
	default:
		return "Failed to create CodeSpace"
	}
}

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldPassword
	fieldArea
	fieldChoice
)

// Field names beyond the request fields validated by codespace.
const (
	fieldDescription    = "description"
	fieldCustomLanguage = "custom_language"
)

type formField struct {
	name   string
	label  string
	kind   fieldKind
	input  textinput.Model
	area   textarea.Model
	choice int // index into codespace.Languages, -1 when unset
}

func newTextField(name, label, placeholder string, limit int) *formField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = ""
	return &formField{name: name, label: label, kind: fieldText, input: ti}
}

func newPasswordField() *formField {
	f := newTextField(codespace.FieldPassword, "Password", "required for every change", 128)
	f.kind = fieldPassword
	f.input.EchoMode = textinput.EchoPassword
	f.input.EchoCharacter = '•'
	return f
}

func newAreaField(name, label, placeholder string, height int) *formField {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(height)
	return &formField{name: name, label: label, kind: fieldArea, area: ta}
}

func newChoiceField() *formField {
	return &formField{name: codespace.FieldLanguage, label: "Language", kind: fieldChoice, choice: -1}
}

func (f *formField) value() string {
	switch f.kind {
	case fieldArea:
		return f.area.Value()
	case fieldChoice:
		if f.choice < 0 || f.choice >= len(codespace.Languages) {
			return ""
		}
		return codespace.Languages[f.choice]
	default:
		return f.input.Value()
	}
}

func (f *formField) setValue(v string) {
	switch f.kind {
	case fieldArea:
		f.area.SetValue(v)
	case fieldChoice:
		f.choice = -1
		for i, l := range codespace.Languages {
			if l == v {
				f.choice = i
			}
		}
	default:
		f.input.SetValue(v)
	}
}

func (f *formField) focus() {
	switch f.kind {
	case fieldArea:
		f.area.Focus()
	case fieldChoice:
	default:
		f.input.Focus()
	}
}

func (f *formField) blur() {
	switch f.kind {
	case fieldArea:
		f.area.Blur()
	case fieldChoice:
	default:
		f.input.Blur()
	}
}

// form is a create or edit form for a space or a piece.
type form struct {
	kind       formKind
	id         int64 // edit target
	spaceID    int64 // parent space of a new piece
	fields     []*formField
	focus      int
	loading    bool
	submitting bool
	err        string
}

func newSpaceForm(kind formKind, id int64, owner string) *form {
	f := &form{kind: kind, id: id}
	f.fields = []*formField{
		newTextField(codespace.FieldName, "Name", "my snippets", 100),
		newTextField(codespace.FieldOwnerName, "Owner", "your name", 50),
		newAreaField(fieldDescription, "Description", "markdown, optional", 4),
		newPasswordField(),
	}
	f.field(codespace.FieldOwnerName).setValue(owner)
	f.fields[0].focus()
	return f
}

func newPieceForm(kind formKind, id, spaceID int64, owner string) *form {
	f := &form{kind: kind, id: id, spaceID: spaceID}
	f.fields = []*formField{
		newTextField(codespace.FieldName, "Name", "quicksort", 100),
		newTextField(codespace.FieldOwnerName, "Owner", "your name", 50),
		newChoiceField(),
		newTextField(fieldCustomLanguage, "Custom language", "e.g. Rust", 30),
		newAreaField(fieldDescription, "Description", "markdown, optional", 3),
		newAreaField(codespace.FieldCode, "Code", "paste your code", 10),
		newPasswordField(),
	}
	f.field(codespace.FieldOwnerName).setValue(owner)
	f.fields[0].focus()
	return f
}

func (f *form) field(name string) *formField {
	for _, fl := range f.fields {
		if fl.name == name {
			return fl
		}
	}
	return nil
}

func (f *form) value(name string) string {
	if fl := f.field(name); fl != nil {
		return fl.value()
	}
	return ""
}

// visible reports whether field i is shown. The custom language field only
// appears once "Other" is chosen.
func (f *form) visible(i int) bool {
	if f.fields[i].name != fieldCustomLanguage {
		return true
	}
	return f.value(codespace.FieldLanguage) == codespace.LanguageOther
}

func (f *form) current() *formField {
	return f.fields[f.focus]
}

// moveFocus steps to the next visible field in direction delta.
func (f *form) moveFocus(delta int) {
	n := len(f.fields)
	next := f.focus
	for range n {
		next = (next + delta + n) % n
		if f.visible(next) {
			break
		}
	}
	f.setFocus(next)
}

func (f *form) setFocus(i int) {
	f.current().blur()
	f.focus = i
	f.current().focus()
}

func (f *form) focusField(name string) {
	for i, fl := range f.fields {
		if fl.name == name && f.visible(i) {
			f.setFocus(i)
			return
		}
	}
}

func (f *form) setWidth(width int) {
	w := max(min(width-6, 100), 20)
	for _, fl := range f.fields {
		fl.input.Width = w
		if fl.kind == fieldArea {
			fl.area.SetWidth(w)
		}
	}
}

// update forwards a message to the focused input.
func (f *form) update(msg tea.Msg) tea.Cmd {
	fl := f.current()
	var cmd tea.Cmd
	switch fl.kind {
	case fieldArea:
		fl.area, cmd = fl.area.Update(msg)
	case fieldChoice:
		if k, ok := msg.(tea.KeyMsg); ok {
			f.cycleChoice(fl, k)
		}
	default:
		fl.input, cmd = fl.input.Update(msg)
	}
	return cmd
}

func (f *form) cycleChoice(fl *formField, msg tea.KeyMsg) {
	n := len(codespace.Languages)
	switch msg.String() {
	case "right", "l", " ", "j", "down":
		fl.choice = (fl.choice + 1) % n
	case "left", "h", "k", "up":
		if fl.choice <= 0 {
			fl.choice = n - 1
		} else {
			fl.choice--
		}
	}
}

func (f *form) clearPassword() {
	if fl := f.field(codespace.FieldPassword); fl != nil {
		fl.setValue("")
	}
}

func (f *form) prefillSpace(s codespace.Space) {
	f.field(codespace.FieldName).setValue(s.Name)
	f.field(codespace.FieldOwnerName).setValue(s.OwnerName)
	f.field(fieldDescription).setValue(s.Description)
}

func (f *form) prefillPiece(p codespace.Piece) {
	f.spaceID = p.SpaceID
	choice, custom := codespace.LanguageChoice(p.Language)
	f.field(codespace.FieldName).setValue(p.Name)
	f.field(codespace.FieldOwnerName).setValue(p.OwnerName)
	f.field(codespace.FieldLanguage).setValue(choice)
	f.field(fieldCustomLanguage).setValue(custom)
	f.field(fieldDescription).setValue(p.Description)
	f.field(codespace.FieldCode).setValue(p.Code)
}

// request builds and validates the request the form submits.
func (f *form) request() (any, error) {
	name := strings.TrimSpace(f.value(codespace.FieldName))
	owner := strings.TrimSpace(f.value(codespace.FieldOwnerName))
	desc := f.value(fieldDescription)
	password := f.value(codespace.FieldPassword)
	language := codespace.ResolveLanguage(f.value(codespace.FieldLanguage), f.value(fieldCustomLanguage))
	code := f.value(codespace.FieldCode)

	switch f.kind {
	case formSpaceEdit:
		req := codespace.UpdateSpaceRequest{
			Name:        codespace.StringPtr(name),
			Description: codespace.StringPtr(desc),
			OwnerName:   codespace.StringPtr(owner),
			Password:    password,
		}
		return req, req.Validate()
	case formPieceCreate:
		req := codespace.CreatePieceRequest{
			SpaceID:     f.spaceID,
			Name:        name,
			Description: desc,
			Language:    language,
			Code:        code,
			Password:    password,
			OwnerName:   owner,
		}
		return req, req.Validate()
	case formPieceEdit:
		req := codespace.UpdatePieceRequest{
			Name:        codespace.StringPtr(name),
			Description: codespace.StringPtr(desc),
			Language:    codespace.StringPtr(language),
			Code:        codespace.StringPtr(code),
			OwnerName:   codespace.StringPtr(owner),
			Password:    password,
		}
		return req, req.Validate()
	default:
		req := codespace.CreateSpaceRequest{
			Name:        name,
			Password:    password,
			OwnerName:   owner,
			Description: desc,
		}
		return req, req.Validate()
	}
}

// successRoute is where a saved form leads.
func (f *form) successRoute() route.Route {
	switch f.kind {
	case formSpaceEdit:
		return route.ToSpace(f.id)
	case formPieceCreate:
		return route.ToSpace(f.spaceID)
	case formPieceEdit:
		return route.ToPiece(f.id)
	default:
		return route.Home()
	}
}

func submitCmd(ctx context.Context, api codespace.API, seq uint64, f *form, req any) tea.Cmd {
	kind, id, next := f.kind, f.id, f.successRoute()
	return func() tea.Msg {
		var err error
		switch r := req.(type) {
		case codespace.CreateSpaceRequest:
			err = api.CreateSpace(ctx, r)
		case codespace.UpdateSpaceRequest:
			err = api.UpdateSpace(ctx, id, r)
		case codespace.CreatePieceRequest:
			err = api.CreatePiece(ctx, r)
		case codespace.UpdatePieceRequest:
			err = api.UpdatePiece(ctx, id, r)
		}
		return submitDoneMsg{seq: seq, kind: kind, next: next, err: err}
	}
}

func (m *Model) handlePrefill(msg prefillMsg) {
	if m.form == nil {
		return
	}
	m.form.loading = false
	switch {
	case msg.err != nil && m.form.kind == formSpaceEdit:
		m.form.err = "Failed to load CodeSpace"
		m.toasts.Notify(notify.LevelError, m.form.err)
	case msg.err != nil:
		m.form.err = "Failed to load code piece"
		m.toasts.Notify(notify.LevelError, m.form.err)
	case msg.space != nil:
		m.form.prefillSpace(*msg.space)
	case msg.piece != nil:
		m.form.prefillPiece(*msg.piece)
	}
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	if key.Matches(msg, m.keys.Cancel) {
		return m, m.back()
	}
	if f.loading || f.submitting {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submitForm()
	case key.Matches(msg, m.keys.NextField):
		f.moveFocus(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevField):
		f.moveFocus(-1)
		return m, nil
	case msg.Type == tea.KeyEnter && f.current().kind != fieldArea:
		if f.current().kind == fieldPassword {
			return m.submitForm()
		}
		f.moveFocus(1)
		return m, nil
	}

	return m, f.update(msg)
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	f := m.form
	req, err := f.request()
	if err != nil {
		var verr *codespace.ValidationError
		if errors.As(err, &verr) {
			f.err = verr.Message
			f.focusField(verr.Field)
			return m, nil
		}
		f.err = err.Error()
		return m, nil
	}
	f.err = ""
	f.submitting = true
	return m, submitCmd(m.ctx, m.api, m.seq, f, req)
}

func (m Model) handleSubmitDone(msg submitDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Warn("form submit failed", zap.String("form", msg.kind.title()), zap.Error(msg.err))
		m.toasts.Notify(notify.LevelError, msg.kind.failureMessage())
		if f := m.form; f != nil {
			f.submitting = false
			f.err = msg.err.Error()
			f.clearPassword()
			f.focusField(codespace.FieldPassword)
		}
		return m, nil
	}

	m.logger.Info("form saved", zap.String("form", msg.kind.title()), zap.String("next", msg.next.String()))
	m.toasts.Notify(notify.LevelSuccess, msg.kind.successMessage())

	var cmds []tea.Cmd
	if f := m.form; f != nil {
		if owner := strings.TrimSpace(f.value(codespace.FieldOwnerName)); owner != "" && owner != m.prefs.OwnerName {
			m.prefs.OwnerName = owner
			cmds = append(cmds, m.savePrefsCmd())
		}
	}
	cmds = append(cmds, m.navigate(msg.next))
	return m, tea.Batch(cmds...)
}

// renderForm renders the active form.
func (m Model) renderForm() string {
	f := m.form
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	var b strings.Builder

	if f.loading {
		b.WriteString(" " + m.spinner.View() + styles.MutedText.Render(" Loading..."))
		return m.renderBox(f.kind.title(), b.String(), m.width, m.contentHeight(), true)
	}

	labelStyle := lipgloss.NewStyle().Width(18)
	for i, fl := range f.fields {
		if !m.form.visible(i) {
			continue
		}
		focused := i == f.focus
		label := styles.MutedText.Inherit(labelStyle).Render(fl.label)
		if focused {
			label = styles.AccentText.Bold(true).Inherit(labelStyle).Render(fl.label)
		}
		b.WriteString(" " + label + "\n")

		switch fl.kind {
		case fieldArea:
			b.WriteString(indent(fl.area.View(), " "))
		case fieldChoice:
			b.WriteString(" " + m.renderChoice(fl, focused))
		default:
			b.WriteString(" " + fl.input.View())
		}
		b.WriteString("\n\n")
	}

	switch {
	case f.submitting:
		b.WriteString(" " + m.spinner.View() + styles.MutedText.Render(" Saving..."))
	case f.err != "":
		b.WriteString(" " + styles.DangerText.Render(f.err))
	}

	return m.renderBox(f.kind.title(), b.String(), m.width, m.contentHeight(), true)
}

// renderChoice renders the language picker.
func (m Model) renderChoice(fl *formField, focused bool) string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	current := fl.value()
	if current == "" {
		current = "select a language"
	}
	text := "‹ " + current + " ›"
	if focused {
		return styles.AccentText.Bold(true).Render(text) + styles.FaintText.Render("  left/right to change")
	}
	return styles.Text.Render(text)
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/promptstudio/prompt-studio/internal/catalog"
	"github.com/promptstudio/prompt-studio/internal/promptbuild"
)

// formField is one input of a template form. Exactly one of the widgets is
// live, depending on the declared input type; select inputs cycle through
// their options instead of accepting free text.
type formField struct {
	spec catalog.InputSpec

	text      textinput.Model
	area      textarea.Model
	optionIdx int
}

func newFormField(spec catalog.InputSpec, width int) formField {
	f := formField{spec: spec, optionIdx: -1}

	switch spec.Type {
	case catalog.InputTextarea:
		ta := textarea.New()
		ta.Placeholder = spec.Name
		ta.CharLimit = 0
		ta.SetWidth(width)
		ta.SetHeight(6)
		f.area = ta
	case catalog.InputSelectSearch:
		if len(spec.Options) > 0 {
			f.optionIdx = 0
		}
	default:
		ti := textinput.New()
		ti.Placeholder = spec.Name
		ti.CharLimit = 0
		ti.Width = width
		f.text = ti
	}
	return f
}

func (f *formField) focus() tea.Cmd {
	switch f.spec.Type {
	case catalog.InputTextarea:
		return f.area.Focus()
	case catalog.InputSelectSearch:
		return nil
	default:
		return f.text.Focus()
	}
}

func (f *formField) blur() {
	switch f.spec.Type {
	case catalog.InputTextarea:
		f.area.Blur()
	case catalog.InputSelectSearch:
	default:
		f.text.Blur()
	}
}

func (f *formField) value() string {
	switch f.spec.Type {
	case catalog.InputTextarea:
		return f.area.Value()
	case catalog.InputSelectSearch:
		if f.optionIdx >= 0 && f.optionIdx < len(f.spec.Options) {
			return f.spec.Options[f.optionIdx]
		}
		return ""
	default:
		return f.text.Value()
	}
}

// cycle moves a select field through its options. No-op for other types.
func (f *formField) cycle(delta int) {
	if f.spec.Type != catalog.InputSelectSearch || len(f.spec.Options) == 0 {
		return
	}
	n := len(f.spec.Options)
	f.optionIdx = ((f.optionIdx+delta)%n + n) % n
}

func (f *formField) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.spec.Type {
	case catalog.InputTextarea:
		f.area, cmd = f.area.Update(msg)
	case catalog.InputSelectSearch:
	default:
		f.text, cmd = f.text.Update(msg)
	}
	return cmd
}

// form holds the fields of the selected template in declaration order.
type form struct {
	fields  []formField
	focused int
}

func newForm(tpl catalog.Template, width int) *form {
	f := &form{focused: -1}
	for _, spec := range tpl.Inputs {
		f.fields = append(f.fields, newFormField(spec, width))
	}
	if len(f.fields) > 0 {
		f.focused = 0
	}
	return f
}

func (f *form) focusCurrent() tea.Cmd {
	for i := range f.fields {
		if i == f.focused {
			continue
		}
		f.fields[i].blur()
	}
	if f.focused >= 0 && f.focused < len(f.fields) {
		return f.fields[f.focused].focus()
	}
	return nil
}

// next and prev wrap around the field list.
func (f *form) next() tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	f.focused = (f.focused + 1) % len(f.fields)
	return f.focusCurrent()
}

func (f *form) prev() tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	f.focused = (f.focused - 1 + len(f.fields)) % len(f.fields)
	return f.focusCurrent()
}

func (f *form) current() *formField {
	if f.focused < 0 || f.focused >= len(f.fields) {
		return nil
	}
	return &f.fields[f.focused]
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	cur := f.current()
	if cur == nil {
		return nil
	}
	return cur.update(msg)
}

// missingRequired names the first required field left blank, or "".
func (f *form) missingRequired() string {
	for i := range f.fields {
		fld := &f.fields[i]
		if fld.spec.IsRequired() && strings.TrimSpace(fld.value()) == "" {
			return fld.spec.Name
		}
	}
	return ""
}

// inputs collects field values in declaration order, ready for execution.
func (f *form) inputs() *promptbuild.Inputs {
	in := promptbuild.NewInputs()
	for i := range f.fields {
		fld := &f.fields[i]
		in.Set(fld.spec.Name, fld.value())
	}
	return in
}

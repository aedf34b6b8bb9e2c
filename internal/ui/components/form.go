// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the DenimHouse
// admin console.
package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/denimhouse-admin/internal/api"
	"github.com/jeranaias/denimhouse-admin/internal/ui/styles"
)

// =============================================================================
// FORM
// =============================================================================

// Field is one labeled text input in a form, with an optional inline
// validation error rendered underneath it.
type Field struct {
	Key   string // server-side field name, matches validation error keys
	Label string
	Input textinput.Model
	Error string
}

// Form holds an ordered set of fields and tracks which one has focus.
type Form struct {
	Title  string
	fields []Field
	focus  int

	theme *styles.Theme
}

// FieldSpec configures one field at construction time.
type FieldSpec struct {
	Key         string
	Label       string
	Placeholder string
	Value       string
	Secret      bool
	CharLimit   int
}

// NewForm builds a form from field specs. The first field gets focus.
func NewForm(theme *styles.Theme, title string, specs []FieldSpec) *Form {
	fields := make([]Field, len(specs))
	for i, spec := range specs {
		input := textinput.New()
		input.Placeholder = spec.Placeholder
		input.SetValue(spec.Value)
		if spec.CharLimit > 0 {
			input.CharLimit = spec.CharLimit
		}
		if spec.Secret {
			input.EchoMode = textinput.EchoPassword
			input.EchoCharacter = '*'
		}
		if i == 0 {
			input.Focus()
		}
		fields[i] = Field{
			Key:   spec.Key,
			Label: spec.Label,
			Input: input,
		}
	}
	return &Form{
		Title:  title,
		fields: fields,
		theme:  theme,
	}
}

// Value returns the current value of the field with the given key.
func (f *Form) Value(key string) string {
	for i := range f.fields {
		if f.fields[i].Key == key {
			return strings.TrimSpace(f.fields[i].Input.Value())
		}
	}
	return ""
}

// SetValue overwrites the value of the field with the given key.
func (f *Form) SetValue(key, value string) {
	for i := range f.fields {
		if f.fields[i].Key == key {
			f.fields[i].Input.SetValue(value)
			return
		}
	}
}

// FocusedKey returns the key of the field that currently has focus.
func (f *Form) FocusedKey() string {
	if f.focus >= 0 && f.focus < len(f.fields) {
		return f.fields[f.focus].Key
	}
	return ""
}

// Next moves focus to the following field, wrapping at the end.
func (f *Form) Next() {
	if len(f.fields) == 0 {
		return
	}
	f.fields[f.focus].Input.Blur()
	f.focus = (f.focus + 1) % len(f.fields)
	f.fields[f.focus].Input.Focus()
}

// Prev moves focus to the preceding field, wrapping at the start.
func (f *Form) Prev() {
	if len(f.fields) == 0 {
		return
	}
	f.fields[f.focus].Input.Blur()
	f.focus = (f.focus - 1 + len(f.fields)) % len(f.fields)
	f.fields[f.focus].Input.Focus()
}

// AtLast reports whether focus is on the final field.
func (f *Form) AtLast() bool {
	return f.focus == len(f.fields)-1
}

// Update forwards a message to the focused input.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.fields[f.focus].Input, cmd = f.fields[f.focus].Input.Update(msg)
	return cmd
}

// ClearErrors removes all inline field errors.
func (f *Form) ClearErrors() {
	for i := range f.fields {
		f.fields[i].Error = ""
	}
}

// ApplyFieldErrors maps a server validation failure onto the form. Each
// field shows the first message keyed to its name. Errors for fields the
// form does not render are ignored; the caller surfaces the summary
// message separately.
func (f *Form) ApplyFieldErrors(err error) {
	f.ClearErrors()
	apiErr := api.AsError(err)
	if apiErr == nil || apiErr.Kind != api.KindValidationFailed {
		return
	}
	for i := range f.fields {
		if msg := apiErr.FirstFieldError(f.fields[i].Key); msg != "" {
			f.fields[i].Error = msg
		}
	}
}

// HasErrors reports whether any field carries an inline error.
func (f *Form) HasErrors() bool {
	for i := range f.fields {
		if f.fields[i].Error != "" {
			return true
		}
	}
	return false
}

// View renders the form with labels, inputs, and inline errors.
func (f *Form) View() string {
	var b strings.Builder

	if f.Title != "" {
		b.WriteString(f.theme.FormTitle.Render(f.Title))
		b.WriteString("\n\n")
	}

	for i := range f.fields {
		field := &f.fields[i]
		label := f.theme.FieldLabel
		if i == f.focus {
			label = f.theme.FieldLabelFocused
		}
		b.WriteString(label.Render(field.Label))
		b.WriteString("\n")
		b.WriteString(field.Input.View())
		b.WriteString("\n")
		if field.Error != "" {
			b.WriteString(f.theme.FieldError.Render("  " + field.Error))
			b.WriteString("\n")
		}
	}

	return b.String()
}

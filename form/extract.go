package form

import (
	"strconv"

	"github.com/kbukum/scribe/errors"
)

// inputKinds is the allow-list of recognized input type attributes.
// Anything else is treated as a plain string input.
var inputKinds = map[string]Kind{
	"string":         KindString,
	"text":           KindString,
	"number":         KindNumber,
	"date":           KindDate,
	"datetime-local": KindDateTime,
}

// Extract reads the scribable form and produces the ordered canonical field
// sequence. Pass order is fixed: bare inputs, textareas, native selects,
// custom listboxes, then radio/checkbox groups collapsed by shared name.
// Within each pass, controls keep document order. Positional ids are
// assigned here and carried on the fields from then on.
//
// A form with zero eligible controls yields an empty sequence, not an
// error. Visibility is re-checked on every call.
func Extract(f Form) ([]Field, error) {
	if f == nil || !f.Visible() {
		return nil, errors.NoScribableForm()
	}

	raw := f.Controls()
	visible := make([]RawControl, 0, len(raw))
	for _, rc := range raw {
		if rc.Control != nil && rc.Control.Visible() {
			visible = append(visible, rc)
		}
	}

	fields := make([]Field, 0, len(visible))
	fields = append(fields, extractInputs(visible)...)
	fields = append(fields, extractByClass(visible, ClassTextArea, KindString)...)
	fields = append(fields, extractByClass(visible, ClassSelect, KindSingleSelect)...)
	fields = append(fields, extractByClass(visible, ClassListbox, KindListbox)...)
	fields = append(fields, extractGroups(visible)...)

	for i := range fields {
		fields[i].ID = strconv.Itoa(i)
	}
	return fields, nil
}

// extractInputs handles bare inputs: not submit buttons, not comboboxes,
// and not the grouped radio/checkbox controls handled later.
func extractInputs(raw []RawControl) []Field {
	var fields []Field
	for _, rc := range raw {
		if rc.Class != ClassInput {
			continue
		}
		if rc.Type == "submit" || rc.Role == "combobox" || isGrouped(rc.Type) {
			continue
		}
		fields = append(fields, Field{
			Kind:    classifyInput(rc.Type),
			Control: rc.Control,
			Label:   rc.Label,
			Value:   readValue(rc.Control),
			Prompt:  rc.Prompt,
			Example: rc.Example,
		})
	}
	return fields
}

// extractByClass handles textareas, native selects, and custom listboxes,
// which all map one control to one field.
func extractByClass(raw []RawControl, class Class, kind Kind) []Field {
	var fields []Field
	for _, rc := range raw {
		if rc.Class != class {
			continue
		}
		fields = append(fields, Field{
			Kind:    kind,
			Control: rc.Control,
			Label:   rc.Label,
			Value:   readValue(rc.Control),
			Options: rc.Options,
			Prompt:  rc.Prompt,
			Example: rc.Example,
		})
	}
	return fields
}

// extractGroups collapses radio/checkbox controls sharing a name into one
// field per group. The first-seen control of a group wins: it decides the
// kind (radio groups are single-select, checkbox groups multi-choice),
// its options enumerate every sibling sharing the name and its value is
// whichever sibling is currently checked.
func extractGroups(raw []RawControl) []Field {
	var fields []Field
	seen := make(map[string]bool)

	for _, rc := range raw {
		if rc.Class != ClassInput || !isGrouped(rc.Type) {
			continue
		}
		if seen[rc.Name] {
			continue
		}
		seen[rc.Name] = true

		var options []Option
		var value *string
		for _, sibling := range raw {
			if sibling.Class != ClassInput || !isGrouped(sibling.Type) || sibling.Name != rc.Name {
				continue
			}
			options = append(options, Option{Value: sibling.ValueAttr, Text: sibling.Label})
			if sibling.Checked && value == nil {
				v := sibling.ValueAttr
				value = &v
			}
		}

		kind := KindMultiChoice
		if rc.Type == "radio" {
			kind = KindSingleSelect
		}
		fields = append(fields, Field{
			Kind:    kind,
			Control: rc.Control,
			Label:   rc.GroupLabel,
			Value:   value,
			Options: options,
			Prompt:  rc.Prompt,
			Example: rc.Example,
		})
	}
	return fields
}

func isGrouped(inputType string) bool {
	return inputType == "radio" || inputType == "checkbox"
}

func classifyInput(inputType string) Kind {
	if kind, ok := inputKinds[inputType]; ok {
		return kind
	}
	return KindString
}

func readValue(c Control) *string {
	v, ok := c.Value()
	if !ok {
		return nil
	}
	return &v
}

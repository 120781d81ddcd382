package form

import (
	"testing"

	"github.com/kbukum/scribe/errors"
)

// fakeControl implements Control for tests.
type fakeControl struct {
	value   *string
	visible bool
	bounds  Rect
}

func (c *fakeControl) Value() (string, bool) {
	if c.value == nil {
		return "", false
	}
	return *c.value, true
}

func (c *fakeControl) SetValue(v string) error {
	c.value = &v
	return nil
}

func (c *fakeControl) Visible() bool { return c.visible }
func (c *fakeControl) Bounds() Rect  { return c.bounds }

// fakeForm implements Form for tests.
type fakeForm struct {
	visible  bool
	controls []RawControl
}

func (f *fakeForm) Visible() bool          { return f.visible }
func (f *fakeForm) Controls() []RawControl { return f.controls }

func str(s string) *string { return &s }

func visibleControl(value *string) *fakeControl {
	return &fakeControl{value: value, visible: true}
}

func TestExtractNoForm(t *testing.T) {
	if _, err := Extract(nil); !errors.HasCode(err, errors.ErrCodeNoScribableForm) {
		t.Errorf("nil form: got %v", err)
	}
	if _, err := Extract(&fakeForm{visible: false}); !errors.HasCode(err, errors.ErrCodeNoScribableForm) {
		t.Errorf("invisible form: got %v", err)
	}
}

func TestExtractEmptyForm(t *testing.T) {
	fields, err := Extract(&fakeForm{visible: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fields) != 0 {
		t.Errorf("expected no fields, got %d", len(fields))
	}
}

func TestExtractPassOrderAndIDs(t *testing.T) {
	f := &fakeForm{visible: true, controls: []RawControl{
		// Document order deliberately interleaved across classes.
		{Class: ClassInput, Type: "radio", Name: "sex", ValueAttr: "M", Label: "Male", GroupLabel: "Sex", Control: visibleControl(nil)},
		{Class: ClassTextArea, Label: "Notes", Control: visibleControl(str("hello"))},
		{Class: ClassInput, Type: "text", Label: "Name", Control: visibleControl(str(""))},
		{Class: ClassInput, Type: "radio", Name: "sex", ValueAttr: "F", Label: "Female", GroupLabel: "Sex", Checked: true, Control: visibleControl(str("F"))},
		{Class: ClassSelect, Label: "District", Options: []Option{{Value: "1", Text: "North"}}, Control: visibleControl(str("1"))},
		{Class: ClassListbox, Label: "Ward", Options: []Option{{Value: "A", Text: "Ward A"}}, Control: visibleControl(nil)},
		{Class: ClassInput, Type: "submit", Control: visibleControl(nil)},
		{Class: ClassInput, Type: "text", Role: "combobox", Control: visibleControl(nil)},
		{Class: ClassInput, Type: "text", Label: "Hidden", Control: &fakeControl{visible: false}},
	}}

	fields, err := Extract(f)
	if err != nil {
		t.Fatal(err)
	}

	wantKinds := []Kind{KindString, KindString, KindSingleSelect, KindListbox, KindSingleSelect}
	if len(fields) != len(wantKinds) {
		t.Fatalf("got %d fields, want %d", len(fields), len(wantKinds))
	}
	for i, want := range wantKinds {
		if fields[i].Kind != want {
			t.Errorf("field %d kind = %s, want %s", i, fields[i].Kind, want)
		}
	}

	wantLabels := []string{"Name", "Notes", "District", "Ward", "Sex"}
	for i, want := range wantLabels {
		if fields[i].Label != want {
			t.Errorf("field %d label = %q, want %q", i, fields[i].Label, want)
		}
	}

	for i, f := range fields {
		if wantID := string(rune('0' + i)); f.ID != wantID {
			t.Errorf("field %d id = %q, want %q", i, f.ID, wantID)
		}
	}
}

func TestExtractGroupCollapsing(t *testing.T) {
	f := &fakeForm{visible: true, controls: []RawControl{
		{Class: ClassInput, Type: "radio", Name: "sex", ValueAttr: "M", Label: "Male", GroupLabel: "Sex", Control: visibleControl(nil)},
		{Class: ClassInput, Type: "radio", Name: "sex", ValueAttr: "F", Label: "Female", GroupLabel: "Sex", Checked: true, Control: visibleControl(str("F"))},
		{Class: ClassInput, Type: "checkbox", Name: "consent", ValueAttr: "yes", Label: "I consent", GroupLabel: "Consent", Control: visibleControl(nil)},
	}}

	fields, err := Extract(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(fields) != 2 {
		t.Fatalf("got %d fields, want one per group", len(fields))
	}

	sex := fields[0]
	if sex.Kind != KindSingleSelect {
		t.Errorf("radio group kind = %s, want %s", sex.Kind, KindSingleSelect)
	}
	if len(sex.Options) != 2 || sex.Options[0].Value != "M" || sex.Options[1].Value != "F" {
		t.Errorf("sex options = %v", sex.Options)
	}
	if v, ok := sex.CurrentValue(); !ok || v != "F" {
		t.Errorf("sex value = %q, %v; want checked sibling", v, ok)
	}

	consent := fields[1]
	if consent.Kind != KindMultiChoice {
		t.Errorf("checkbox group kind = %s, want %s", consent.Kind, KindMultiChoice)
	}
	if _, ok := consent.CurrentValue(); ok {
		t.Error("unchecked group should have no value")
	}
}

func TestClassifyInput(t *testing.T) {
	tests := []struct {
		inputType string
		want      Kind
	}{
		{"text", KindString},
		{"string", KindString},
		{"number", KindNumber},
		{"date", KindDate},
		{"datetime-local", KindDateTime},
		{"email", KindString},
		{"tel", KindString},
		{"", KindString},
	}
	for _, tc := range tests {
		t.Run(tc.inputType, func(t *testing.T) {
			if got := classifyInput(tc.inputType); got != tc.want {
				t.Errorf("classifyInput(%q) = %s, want %s", tc.inputType, got, tc.want)
			}
		})
	}
}

func TestExtractVisibilityRechecked(t *testing.T) {
	c := &fakeControl{value: str("x"), visible: true}
	f := &fakeForm{visible: true, controls: []RawControl{
		{Class: ClassInput, Type: "text", Label: "Name", Control: c},
	}}

	fields, err := Extract(f)
	if err != nil || len(fields) != 1 {
		t.Fatalf("first pass: %v, %d fields", err, len(fields))
	}

	// Control hidden between passes: excluded from the new extraction but
	// still reachable through the old field's control-ref.
	c.visible = false
	fields2, err := Extract(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(fields2) != 0 {
		t.Errorf("hidden control still extracted")
	}
	if err := fields[0].Control.SetValue("written"); err != nil {
		t.Errorf("write-back through stale control-ref failed: %v", err)
	}
}

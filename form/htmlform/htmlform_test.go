package htmlform

import (
	"testing"

	"github.com/kbukum/scribe/form"
)

const samplePage = `<!DOCTYPE html>
<html><body>
<div data-scribe-form="true">
	<label for="name">Name</label>
	<input type="text" id="name" value="Asha" data-bounds="10,20,200,32">
	<label>Notes<textarea>stable overnight</textarea></label>
	<label for="district">District</label>
	<select id="district">
		<option value="1">North</option>
		<option value="2" selected>South</option>
	</select>
	<label for="ward">Ward</label>
	<div id="ward" data-listbox="true"
		data-listbox-options='[["A","Ward A"],["B","Ward B"]]'
		data-listbox-value='"A"'></div>
	<label for="sex">Sex</label>
	<label><input type="radio" name="sex" value="M">Male</label>
	<label><input type="radio" name="sex" value="F" checked>Female</label>
	<input type="submit" value="Save">
	<div data-scribe-ignore="true">
		<input type="text" id="internal" value="skip me">
	</div>
	<input type="text" id="ghost" style="display: none" value="hidden">
</div>
</body></html>`

func mustParse(t *testing.T, page string) *Document {
	t.Helper()
	doc, err := ParseString(page)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func extractSample(t *testing.T, page string) ([]form.Field, *Document) {
	t.Helper()
	doc := mustParse(t, page)
	f := doc.ScribeForm()
	if f == nil {
		t.Fatal("marked form not found")
	}
	fields, err := form.Extract(f)
	if err != nil {
		t.Fatal(err)
	}
	return fields, doc
}

func TestScribeFormNotFound(t *testing.T) {
	doc := mustParse(t, `<html><body><input type="text"></body></html>`)
	if doc.ScribeForm() != nil {
		t.Error("expected nil form for unmarked page")
	}
}

func TestExtractSamplePage(t *testing.T) {
	fields, _ := extractSample(t, samplePage)

	wantLabels := []string{"Name", "Notes", "District", "Ward", "Sex"}
	if len(fields) != len(wantLabels) {
		t.Fatalf("got %d fields: %+v", len(fields), fields)
	}
	for i, want := range wantLabels {
		if fields[i].Label != want {
			t.Errorf("field %d label = %q, want %q", i, fields[i].Label, want)
		}
	}

	if v, ok := fields[0].CurrentValue(); !ok || v != "Asha" {
		t.Errorf("name value = %q, %v", v, ok)
	}
	if v, ok := fields[1].CurrentValue(); !ok || v != "stable overnight" {
		t.Errorf("notes value = %q, %v", v, ok)
	}
	if v, ok := fields[2].CurrentValue(); !ok || v != "2" {
		t.Errorf("district value = %q, %v", v, ok)
	}
	if v, ok := fields[3].CurrentValue(); !ok || v != "A" {
		t.Errorf("ward value = %q, %v", v, ok)
	}
	if v, ok := fields[4].CurrentValue(); !ok || v != "F" {
		t.Errorf("sex value = %q, %v", v, ok)
	}

	if len(fields[3].Options) != 2 || fields[3].Options[1].Text != "Ward B" {
		t.Errorf("ward options = %v", fields[3].Options)
	}
	if len(fields[4].Options) != 2 || fields[4].Options[0].Value != "M" {
		t.Errorf("sex options = %v", fields[4].Options)
	}

	if fields[0].Control.Bounds() != (form.Rect{X: 10, Y: 20, Width: 200, Height: 32}) {
		t.Errorf("name bounds = %v", fields[0].Control.Bounds())
	}
}

func TestExtractSkipsIgnoredAndHidden(t *testing.T) {
	fields, _ := extractSample(t, samplePage)
	for _, f := range fields {
		if v, _ := f.CurrentValue(); v == "skip me" || v == "hidden" {
			t.Errorf("excluded control leaked into extraction: %+v", f)
		}
	}
}

func TestWriteBackMutatesTree(t *testing.T) {
	fields, doc := extractSample(t, samplePage)

	if err := fields[0].Control.SetValue("Binta"); err != nil {
		t.Fatal(err)
	}
	if err := fields[1].Control.SetValue("improving"); err != nil {
		t.Fatal(err)
	}
	if err := fields[2].Control.SetValue("1"); err != nil {
		t.Fatal(err)
	}
	if err := fields[3].Control.SetValue("B"); err != nil {
		t.Fatal(err)
	}
	if err := fields[4].Control.SetValue("M"); err != nil {
		t.Fatal(err)
	}

	again, err := form.Extract(doc.ScribeForm())
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Binta", "improving", "1", "B", "M"}
	for i, w := range want {
		if v, ok := again[i].CurrentValue(); !ok || v != w {
			t.Errorf("field %d after write = %q, %v; want %q", i, v, ok, w)
		}
	}
}

func TestSetValueRejectsUnknownOption(t *testing.T) {
	fields, _ := extractSample(t, samplePage)
	if err := fields[2].Control.SetValue("99"); err == nil {
		t.Error("select accepted unknown option")
	}
	if err := fields[4].Control.SetValue("X"); err == nil {
		t.Error("radio group accepted unknown option")
	}
}

func TestHiddenFormIsNotScribable(t *testing.T) {
	doc := mustParse(t, `<html><body>
		<div data-scribe-form="true" hidden><input type="text"></div>
	</body></html>`)
	f := doc.ScribeForm()
	if f == nil {
		t.Fatal("form node should still be located")
	}
	if f.Visible() {
		t.Error("hidden form reported visible")
	}
}

func TestListboxEmptyValue(t *testing.T) {
	doc := mustParse(t, `<html><body><div data-scribe-form="true">
		<div data-listbox="true" data-listbox-options='[["A","Ward A"]]'></div>
	</div></body></html>`)
	fields, err := form.Extract(doc.ScribeForm())
	if err != nil || len(fields) != 1 {
		t.Fatalf("extract: %v, %d fields", err, len(fields))
	}
	if _, ok := fields[0].CurrentValue(); ok {
		t.Error("unset listbox should have no value")
	}
}

func TestBoundsMalformed(t *testing.T) {
	doc := mustParse(t, `<html><body><div data-scribe-form="true">
		<input type="text" data-bounds="1,2,3">
	</div></body></html>`)
	fields, err := form.Extract(doc.ScribeForm())
	if err != nil || len(fields) != 1 {
		t.Fatalf("extract: %v", err)
	}
	if !fields[0].Control.Bounds().IsZero() {
		t.Errorf("malformed bounds = %v, want zero", fields[0].Control.Bounds())
	}
}

package reconcile

import (
	"testing"

	"github.com/kbukum/scribe/form"
)

func TestParseResponse(t *testing.T) {
	resp, err := ParseResponse(`{
		"0": "Asha",
		"1": 37,
		"2": true,
		"3": null,
		"4": "",
		"5": 0,
		"6": false,
		"7": 2.5
	}`)
	if err != nil {
		t.Fatal(err)
	}

	want := Response{"0": "Asha", "1": "37", "2": "true", "7": "2.5"}
	if len(resp) != len(want) {
		t.Fatalf("got %v, want %v", resp, want)
	}
	for id, v := range want {
		if resp[id] != v {
			t.Errorf("resp[%q] = %q, want %q", id, resp[id], v)
		}
	}
}

func TestParseResponseEmpty(t *testing.T) {
	for _, raw := range []string{"", "   ", "{}"} {
		resp, err := ParseResponse(raw)
		if err != nil {
			t.Errorf("ParseResponse(%q) error: %v", raw, err)
		}
		if len(resp) != 0 {
			t.Errorf("ParseResponse(%q) = %v, want empty", raw, resp)
		}
	}
}

func TestParseResponseInvalid(t *testing.T) {
	if _, err := ParseResponse("not json"); err == nil {
		t.Error("expected error for invalid JSON")
	}
	if _, err := ParseResponse(`["a","b"]`); err == nil {
		t.Error("expected error for non-mapping JSON")
	}
}

func str(s string) *string { return &s }

func TestSuggestionsChangedOnly(t *testing.T) {
	fields := []form.Field{
		{ID: "0", Label: "Name", Value: str("Asha")},
		{ID: "1", Label: "Sex", Value: str("F")},
		{ID: "2", Label: "Notes", Value: nil},
	}
	resp := Response{
		"0": "Binta", // changed
		"1": "F",     // equals current
		"2": "stable overnight",
		"9": "no such field",
	}

	got := Suggestions(resp, fields)
	if len(got) != 2 {
		t.Fatalf("got %d suggestions: %+v", len(got), got)
	}
	if got[0].Field.Label != "Name" || got[0].Value != "Binta" {
		t.Errorf("suggestion 0 = %+v", got[0])
	}
	if got[1].Field.Label != "Notes" || got[1].Value != "stable overnight" {
		t.Errorf("suggestion 1 = %+v", got[1])
	}
}

func TestSuggestionsPreserveFieldOrder(t *testing.T) {
	fields := []form.Field{
		{ID: "0"}, {ID: "1"}, {ID: "2"},
	}
	resp := Response{"2": "c", "0": "a"}

	got := Suggestions(resp, fields)
	if len(got) != 2 || got[0].Field.ID != "0" || got[1].Field.ID != "2" {
		t.Errorf("order not preserved: %+v", got)
	}
}

func TestSuggestionsEmpty(t *testing.T) {
	if got := Suggestions(Response{}, []form.Field{{ID: "0"}}); len(got) != 0 {
		t.Errorf("got %+v", got)
	}
	if got := Suggestions(Response{"0": "x"}, nil); len(got) != 0 {
		t.Errorf("got %+v", got)
	}
}

package form

import (
	"strconv"
	"testing"
)

func TestHydratePositionalIDs(t *testing.T) {
	fields := []Field{
		{ID: "0", Kind: KindString, Label: "Name"},
		{ID: "1", Kind: KindDate, Label: "DOB"},
		{ID: "2", Kind: KindSingleSelect, Label: "Sex"},
	}
	hydrated := Hydrate(fields)
	if len(hydrated) != len(fields) {
		t.Fatalf("length = %d", len(hydrated))
	}
	for i, h := range hydrated {
		if h.ID != strconv.Itoa(i) {
			t.Errorf("hydrated[%d].ID = %q", i, h.ID)
		}
		if h.Type != "string" {
			t.Errorf("hydrated[%d].Type = %q, want string", i, h.Type)
		}
	}
}

func TestHydrateHints(t *testing.T) {
	tests := []struct {
		name        string
		field       Field
		description string
		example     string
	}{
		{"date", Field{Kind: KindDate}, "A date value", "2003-12-21"},
		{"datetime", Field{Kind: KindDateTime}, "A datetime value", "2003-12-21T23:10"},
		{"string default", Field{Kind: KindString}, "A normal string value", "A value"},
		{"unknown kind falls back", Field{Kind: Kind("mystery")}, "A normal string value", "A value"},
		{"prompt override", Field{Kind: KindDate, Prompt: "Date of admission"}, "Date of admission", "2003-12-21"},
		{"example override", Field{Kind: KindString, Example: "Asha"}, "A normal string value", "Asha"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := Hydrate([]Field{tc.field})[0]
			if h.Description != tc.description {
				t.Errorf("description = %q, want %q", h.Description, tc.description)
			}
			if h.Example != tc.example {
				t.Errorf("example = %q, want %q", h.Example, tc.example)
			}
		})
	}
}

func TestHydrateFriendlyName(t *testing.T) {
	hydrated := Hydrate([]Field{{Label: "Name"}, {Label: ""}})
	if hydrated[0].FriendlyName != "Name" {
		t.Errorf("friendlyName = %q", hydrated[0].FriendlyName)
	}
	if hydrated[1].FriendlyName != unlabeledName {
		t.Errorf("friendlyName = %q, want %q", hydrated[1].FriendlyName, unlabeledName)
	}
}

func TestHydrateOptions(t *testing.T) {
	f := Field{
		Kind: KindSingleSelect,
		Options: []Option{
			{Value: "M", Text: "Male"},
			{Value: "", Text: "Unset"},
		},
	}
	h := Hydrate([]Field{f})[0]
	if len(h.Options) != 2 {
		t.Fatalf("options = %v", h.Options)
	}
	if h.Options[0].ID != "M" || h.Options[0].Text != "Male" {
		t.Errorf("options[0] = %v", h.Options[0])
	}
	if h.Options[1].ID != "NONE" {
		t.Errorf("empty option value should map to NONE, got %q", h.Options[1].ID)
	}

	plain := Hydrate([]Field{{Kind: KindString}})[0]
	if plain.Options != nil {
		t.Errorf("string field should have no options")
	}
}

func TestHydrateCurrent(t *testing.T) {
	v := "F"
	hydrated := Hydrate([]Field{{Value: &v}, {Value: nil}})
	if hydrated[0].Current == nil || *hydrated[0].Current != "F" {
		t.Errorf("current = %v", hydrated[0].Current)
	}
	if hydrated[1].Current != nil {
		t.Errorf("expected nil current")
	}
}

package form

// Kind is the semantic type of a field, independent of its markup.
type Kind string

const (
	KindString       Kind = "string"
	KindNumber       Kind = "number"
	KindDate         Kind = "date"
	KindDateTime     Kind = "datetime"
	KindSingleSelect Kind = "single-select"
	KindMultiChoice  Kind = "multi-choice"
	KindListbox      Kind = "listbox"
)

// Option is one selectable value of a choice-like field.
type Option struct {
	// Value is the stored value.
	Value string `json:"value"`
	// Text is the display text.
	Text string `json:"text"`
}

// Rect is a control's on-screen bounding box, used for review highlighting.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// IsZero reports whether the rect carries no geometry.
func (r Rect) IsZero() bool {
	return r == Rect{}
}

// Field is the canonical representation of one interactive form control.
type Field struct {
	// ID is the positional id ("0", "1", ...) assigned at extraction time.
	// It is the only correlation key between a field, its hydrated payload,
	// and the inference response, and is carried on the field from the
	// moment of extraction rather than recomputed later.
	ID string

	// Kind is the semantic type.
	Kind Kind

	// Control is the non-owning handle to the live control. Used for
	// reading the current value, focus targeting, and write-back only;
	// never serialized or sent remotely.
	Control Control

	// Label is the best-effort human caption (may be empty).
	Label string

	// Value is the control's value at extraction time; nil means no value.
	Value *string

	// Options enumerates allowed values for choice-like kinds.
	Options []Option

	// Prompt overrides the natural-language description sent to inference.
	Prompt string

	// Example overrides the example sent to inference.
	Example string
}

// CurrentValue returns the extraction-time value and whether one was set.
func (f *Field) CurrentValue() (string, bool) {
	if f.Value == nil {
		return "", false
	}
	return *f.Value, true
}

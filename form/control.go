package form

// Class identifies the markup class of a raw control.
type Class string

const (
	// ClassInput is a bare input control.
	ClassInput Class = "input"
	// ClassTextArea is a multi-line text control.
	ClassTextArea Class = "textarea"
	// ClassSelect is a native select control.
	ClassSelect Class = "select"
	// ClassListbox is a custom listbox widget carrying its options and
	// value as encoded data attributes.
	ClassListbox Class = "listbox"
)

// Control is the capability surface over one live form control. It is the
// only channel through which the library reads or mutates the host page.
type Control interface {
	// Value returns the control's current value. The second return is
	// false when the control has no value (e.g. no radio checked).
	Value() (string, bool)

	// SetValue writes a value into the live control. For grouped
	// radio/checkbox controls the implementation selects the sibling
	// whose value matches.
	SetValue(value string) error

	// Visible reports whether the control is currently rendered.
	Visible() bool

	// Bounds returns the control's on-screen bounding box, zero when the
	// host cannot measure it.
	Bounds() Rect
}

// RawControl pairs a live control handle with the static markup facts the
// extractor needs for classification and grouping.
type RawControl struct {
	// Control is the live handle.
	Control Control

	// Class is the markup class.
	Class Class

	// Type is the input type attribute (inputs only).
	Type string

	// Role is the accessibility role attribute, when present.
	Role string

	// Name is the shared group name for radio/checkbox controls.
	Name string

	// Label is the caption associated with this control.
	Label string

	// GroupLabel is the caption associated with the control's group name
	// (radio/checkbox only).
	GroupLabel string

	// ValueAttr is the static value attribute (radio/checkbox only).
	ValueAttr string

	// Checked reports the checked state (radio/checkbox only).
	Checked bool

	// Options enumerates the declared options (selects and listboxes).
	Options []Option

	// Prompt is an author-supplied description override.
	Prompt string

	// Example is an author-supplied example override.
	Example string
}

// Form is the designated scribable subtree of the host page.
type Form interface {
	// Visible reports whether the form root is currently rendered.
	Visible() bool

	// Controls returns all interactive controls in document order,
	// excluding any under an ignore marker.
	Controls() []RawControl
}

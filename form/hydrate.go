package form

// HydratedField is the payload schema the inference backend expects for one
// field. All kinds are flattened to type "string"; domain-specific
// formatting is conveyed only through the description and example text.
type HydratedField struct {
	ID           string           `json:"id"`
	FriendlyName string           `json:"friendlyName"`
	Description  string           `json:"description"`
	Example      string           `json:"example"`
	Type         string           `json:"type"`
	Options      []HydratedOption `json:"options,omitempty"`
	Current      *string          `json:"current"`
}

// HydratedOption is one allowed value in the hydrated payload.
type HydratedOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// hint is the natural-language guidance sent for a field kind.
type hint struct {
	description string
	example     string
}

var kindHints = map[Kind]hint{
	KindDate:         {"A date value", "2003-12-21"},
	KindDateTime:     {"A datetime value", "2003-12-21T23:10"},
	KindNumber:       {"A numeric value", "42"},
	KindSingleSelect: {"One of the allowed option values", "OPTION"},
	KindMultiChoice:  {"One of the allowed option values", "OPTION"},
	KindListbox:      {"One of the allowed option values", "OPTION"},
}

var defaultHint = hint{"A normal string value", "A value"}

// unlabeledName is sent when a field has no caption.
const unlabeledName = "Unlabeled Field"

// Hydrate converts canonical fields into the backend payload. It is pure,
// total, and order-preserving: the hydrated id at index i equals the
// field's own positional id.
func Hydrate(fields []Field) []HydratedField {
	hydrated := make([]HydratedField, len(fields))
	for i, f := range fields {
		h := kindHints[f.Kind]
		if h == (hint{}) {
			h = defaultHint
		}
		if f.Prompt != "" {
			h.description = f.Prompt
		}
		if f.Example != "" {
			h.example = f.Example
		}

		name := f.Label
		if name == "" {
			name = unlabeledName
		}

		hydrated[i] = HydratedField{
			ID:           f.ID,
			FriendlyName: name,
			Description:  h.description,
			Example:      h.example,
			Type:         "string",
			Options:      hydrateOptions(f.Options),
			Current:      f.Value,
		}
	}
	return hydrated
}

func hydrateOptions(options []Option) []HydratedOption {
	if len(options) == 0 {
		return nil
	}
	out := make([]HydratedOption, len(options))
	for i, opt := range options {
		id := opt.Value
		if id == "" {
			id = "NONE"
		}
		out[i] = HydratedOption{ID: id, Text: opt.Text}
	}
	return out
}

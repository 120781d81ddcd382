// Package reconcile diffs the inference response against the extracted
// field snapshot and produces the suggestions the review step walks
// through. Only actual changes survive: falsy proposals and proposals
// matching a field's current value are dropped.
package reconcile

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/form"
)

// Response maps field ids to proposed string values.
type Response map[string]string

// Suggestion is one proposed change to a field.
type Suggestion struct {
	// Field is the extraction-snapshot field the proposal targets.
	Field form.Field
	// Value is the proposed new value.
	Value string
}

// ParseResponse decodes the backend's JSON mapping from field id to
// proposed value. Scalars are stringified; null, empty string, zero and
// false are treated as "no proposal" and dropped. Compound values are
// kept as their compact JSON encoding.
func ParseResponse(raw string) (Response, error) {
	if strings.TrimSpace(raw) == "" {
		return Response{}, nil
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var parsed map[string]any
	if err := dec.Decode(&parsed); err != nil {
		return nil, errors.Validation("Inference response is not a valid JSON mapping.").WithCause(err)
	}

	resp := make(Response, len(parsed))
	for id, value := range parsed {
		s, ok := stringify(value)
		if !ok {
			continue
		}
		resp[id] = s
	}
	return resp, nil
}

func stringify(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, v != ""
	case bool:
		if !v {
			return "", false
		}
		return "true", true
	case json.Number:
		if f, err := v.Float64(); err == nil && f == 0 {
			return "", false
		}
		return v.String(), true
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		if err := enc.Encode(v); err != nil {
			return "", false
		}
		return strings.TrimRight(buf.String(), "\n"), true
	}
}

// Suggestions correlates proposals to the field snapshot by positional id.
// Field order is preserved, each field yields at most one suggestion, ids
// absent from the snapshot are ignored, and proposals equal to the field's
// current value are dropped so review presents changes only.
func Suggestions(resp Response, fields []form.Field) []Suggestion {
	var out []Suggestion
	for _, f := range fields {
		proposed, ok := resp[f.ID]
		if !ok {
			continue
		}
		if current, has := f.CurrentValue(); has && current == proposed {
			continue
		}
		out = append(out, Suggestion{Field: f, Value: proposed})
	}
	return out
}

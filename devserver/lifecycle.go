package devserver

import (
	"encoding/json"
	"time"

	"github.com/kbukum/scribe/form"
	"github.com/kbukum/scribe/session"
)

// Inferencer produces the simulated inference response: a mapping from
// field id to proposed value, later JSON-encoded into ai_response.
type Inferencer func(transcript string, fields []form.HydratedField) map[string]string

// exampleInferencer proposes each field's example for every field that
// has no current value. It is deliberately dumb; it only needs to give
// the review flow something to walk through.
func exampleInferencer(transcript string, fields []form.HydratedField) map[string]string {
	out := make(map[string]string)
	for _, f := range fields {
		if f.Current != nil && *f.Current != "" {
			continue
		}
		if f.Example != "" {
			out[f.ID] = f.Example
		}
	}
	return out
}

// runLifecycle simulates the backend pipeline for one session after it is
// marked READY: transcript generation, then inference, then COMPLETED. A
// session flagged to fail stops at FAILED instead. Each step takes the
// configured delay.
func (s *Server) runLifecycle(id string) {
	step := func(fn func(*record)) bool {
		time.Sleep(s.stepDelay)
		_, err := s.store.updateSession(id, fn)
		return err == nil
	}

	rec, err := s.store.getSession(id)
	if err != nil {
		return
	}

	if rec.Fail {
		step(func(r *record) { r.Status = session.StatusFailed })
		return
	}

	if !rec.EditedTranscript {
		if !step(func(r *record) { r.Status = session.StatusGeneratingTranscript }) {
			return
		}
		if !step(func(r *record) { r.Transcript = s.transcript }) {
			return
		}
	}

	if !step(func(r *record) { r.Status = session.StatusGeneratingAIResponse }) {
		return
	}

	step(func(r *record) {
		proposals := s.inferencer(r.Transcript, r.FormData)
		encoded, err := json.Marshal(proposals)
		if err != nil {
			r.Status = session.StatusFailed
			return
		}
		r.AIResponse = string(encoded)
		r.Status = session.StatusCompleted
	})
}

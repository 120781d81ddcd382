// Package session talks to the remote transcription/inference backend.
// It owns the session resource lifecycle (create, ready, transcript edit),
// the three-phase audio upload, and the fixed-interval poller that waits
// for the transcript or the inference response.
package session

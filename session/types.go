package session

import "github.com/kbukum/scribe/form"

// Status is the backend session lifecycle status.
type Status string

const (
	StatusCreated              Status = "CREATED"
	StatusReady                Status = "READY"
	StatusGeneratingTranscript Status = "GENERATING_TRANSCRIPT"
	StatusGeneratingAIResponse Status = "GENERATING_AI_RESPONSE"
	StatusCompleted            Status = "COMPLETED"
	StatusFailed               Status = "FAILED"
)

// Pending reports whether the backend is still working on the session.
// Only the three recognized in-flight statuses count as pending; anything
// else, including a status this client has never heard of, is a stop
// signal for the poller.
func (s Status) Pending() bool {
	switch s {
	case StatusCreated, StatusReady, StatusGeneratingTranscript:
		return true
	}
	return false
}

// Session is the remote session resource.
type Session struct {
	ExternalID string               `json:"external_id"`
	Status     Status               `json:"status"`
	FormData   []form.HydratedField `json:"form_data"`
	Transcript string               `json:"transcript"`
	AIResponse string               `json:"ai_response"`
}

// AudioBlob is one captured audio segment awaiting upload.
type AudioBlob struct {
	Data []byte
	MIME string
}

// Await names the session datum a poll is waiting for.
type Await string

const (
	AwaitTranscript Await = "transcript"
	AwaitAIResponse Await = "ai_response"
)

// datum extracts the awaited value from a session read.
func (a Await) datum(s *Session) string {
	if a == AwaitAIResponse {
		return s.AIResponse
	}
	return s.Transcript
}

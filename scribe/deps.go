package scribe

import (
	"context"

	"github.com/kbukum/scribe/form"
	"github.com/kbukum/scribe/session"
)

// Recorder captures audio. Stop returns the segments recorded since the
// last Start; Reset discards any captured segments.
type Recorder interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) ([]session.AudioBlob, error)
	Reset()
}

// Backend is the remote transcription/inference surface the orchestrator
// drives. *session.Client satisfies it.
type Backend interface {
	Create(ctx context.Context, fields []form.HydratedField) (string, error)
	AttachAudio(ctx context.Context, sessionID string, blob session.AudioBlob) error
	MarkReady(ctx context.Context, sessionID string) error
	SubmitTranscript(ctx context.Context, sessionID, text string) error
	Poll(ctx context.Context, sessionID string, await session.Await) (string, error)
}

// FormSource locates the scribable form in the host environment.
// *htmlform.Document satisfies it.
type FormSource interface {
	ScribeForm() form.Form
}

// Notifier is the user-facing message surface.
type Notifier interface {
	Info(msg string)
	Error(msg string)
}

type nopNotifier struct{}

func (nopNotifier) Info(string)  {}
func (nopNotifier) Error(string) {}

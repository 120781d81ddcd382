package session

import (
	"context"
	"strings"
	"time"

	"github.com/kbukum/scribe/config"
	"github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/form"
	"github.com/kbukum/scribe/httpclient"
	"github.com/kbukum/scribe/logger"
)

// Client is the backend client for the session and file-upload resources.
type Client struct {
	http         *httpclient.Client
	prefix       string
	pollInterval time.Duration
	log          *logger.Logger
}

// NewClient builds a backend client from configuration.
func NewClient(cfg config.BackendConfig, log *logger.Logger) (*Client, error) {
	hc, err := httpclient.New(httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Auth:    httpclient.BearerAuth(cfg.Token),
	})
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		http:         hc,
		prefix:       strings.TrimRight(cfg.PathPrefix, "/"),
		pollInterval: cfg.PollInterval,
		log:          log.WithComponent("session"),
	}, nil
}

func (c *Client) sessionPath(id string) string {
	if id == "" {
		return c.prefix + "/"
	}
	return c.prefix + "/" + id + "/"
}

func (c *Client) filePath(id string) string {
	if id == "" {
		return c.prefix + "_file/"
	}
	return c.prefix + "_file/" + id + "/"
}

type createPayload struct {
	Status   Status               `json:"status"`
	FormData []form.HydratedField `json:"form_data"`
}

// Create registers a new session carrying the hydrated field payload and
// returns its external id.
func (c *Client) Create(ctx context.Context, fields []form.HydratedField) (string, error) {
	resp, err := httpclient.Post[Session](ctx, c.http, c.sessionPath(""), createPayload{
		Status:   StatusCreated,
		FormData: fields,
	})
	if err != nil {
		return "", errors.SessionCreation(err)
	}
	if resp.Data.ExternalID == "" {
		return "", errors.SessionCreation(nil).WithDetail("reason", "response carried no external_id")
	}
	c.log.Debug("session created", map[string]interface{}{logger.FieldSession: resp.Data.ExternalID})
	return resp.Data.ExternalID, nil
}

// Get reads the session by id.
func (c *Client) Get(ctx context.Context, id string) (*Session, error) {
	resp, err := httpclient.Get[Session](ctx, c.http, c.sessionPath(id))
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

type statusPayload struct {
	Status Status `json:"status"`
}

type transcriptPayload struct {
	Status     Status  `json:"status"`
	Transcript string  `json:"transcript"`
	AIResponse *string `json:"ai_response"`
}

// MarkReady transitions the session to READY, starting transcription.
func (c *Client) MarkReady(ctx context.Context, id string) error {
	if _, err := httpclient.Put[Session](ctx, c.http, c.sessionPath(id), statusPayload{
		Status: StatusReady,
	}); err != nil {
		return errors.SessionUpdate(err)
	}
	return nil
}

// SubmitTranscript replaces the transcript and clears the prior inference
// response so a subsequent poll observes a fresh terminal state instead of
// the stale one.
func (c *Client) SubmitTranscript(ctx context.Context, id, text string) error {
	if _, err := httpclient.Put[Session](ctx, c.http, c.sessionPath(id), transcriptPayload{
		Status:     StatusReady,
		Transcript: text,
		AIResponse: nil,
	}); err != nil {
		return errors.SessionUpdate(err)
	}
	c.log.Debug("transcript submitted", map[string]interface{}{logger.FieldSession: id})
	return nil
}

package scribe

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/kbukum/scribe/config"
	"github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/form"
	"github.com/kbukum/scribe/logger"
	"github.com/kbukum/scribe/reconcile"
	"github.com/kbukum/scribe/review"
	"github.com/kbukum/scribe/session"
)

// State is the orchestrator lifecycle state.
type State string

const (
	StateIdle         State = "IDLE"
	StateRecording    State = "RECORDING"
	StateUploading    State = "UPLOADING"
	StateTranscribing State = "TRANSCRIBING"
	StateThinking     State = "THINKING"
	StateReviewing    State = "REVIEWING"
	StateFailed       State = "FAILED"
)

// Options wires the orchestrator's collaborators.
type Options struct {
	Recorder Recorder
	Backend  Backend
	Forms    FormSource
	Overlay  review.Overlay
	Notifier Notifier
	Review   config.ReviewConfig
	Logger   *logger.Logger
}

// Controller owns one recording-to-review cycle at a time. Apart from the
// concurrent audio upload fan-out, all stages run strictly sequentially;
// Cancel may be called from another goroutine and takes effect through the
// cycle context.
type Controller struct {
	recorder  Recorder
	backend   Backend
	forms     FormSource
	overlay   review.Overlay
	notifier  Notifier
	reviewCfg config.ReviewConfig
	log       *logger.Logger

	mu          sync.Mutex
	state       State
	cycleCancel context.CancelFunc
	sessionID   string
	fields      []form.Field
	transcript  string
	navigator   *review.Navigator
}

// New builds a Controller in the IDLE state.
func New(opts Options) (*Controller, error) {
	if opts.Recorder == nil || opts.Backend == nil || opts.Forms == nil || opts.Overlay == nil {
		return nil, errors.Validation("Recorder, Backend, Forms and Overlay are required.")
	}
	if opts.Notifier == nil {
		opts.Notifier = nopNotifier{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Controller{
		recorder:  opts.Recorder,
		backend:   opts.Backend,
		forms:     opts.Forms,
		overlay:   opts.Overlay,
		notifier:  opts.Notifier,
		reviewCfg: opts.Review,
		log:       opts.Logger.WithComponent("scribe"),
		state:     StateIdle,
	}, nil
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SessionID returns the current cycle's remote session id, if any.
func (c *Controller) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Transcript returns the last transcript the backend produced.
func (c *Controller) Transcript() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transcript
}

// Navigator returns the active review navigator, nil outside REVIEWING.
func (c *Controller) Navigator() *review.Navigator {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.navigator
}

// StartRecording begins a new cycle. Allowed from IDLE and FAILED; any
// prior review state is discarded.
func (c *Controller) StartRecording(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateIdle && c.state != StateFailed {
		state := c.state
		c.mu.Unlock()
		return errors.Validation("Cannot start recording in state " + string(state) + ".")
	}
	nav := c.navigator
	c.navigator = nil
	c.sessionID = ""
	c.fields = nil
	c.transcript = ""
	c.mu.Unlock()

	if nav != nil {
		nav.Close()
	}
	c.recorder.Reset()
	if err := c.recorder.Start(ctx); err != nil {
		return c.fail(err)
	}
	c.setState(StateRecording)
	return nil
}

// StopRecording ends capture and runs the full pipeline: extract the field
// snapshot, create the session, upload every audio segment, then wait for
// the transcript and the inference response and enter review.
func (c *Controller) StopRecording(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateRecording {
		state := c.state
		c.mu.Unlock()
		return errors.Validation("Cannot stop recording in state " + string(state) + ".")
	}
	cycleCtx, cancel := context.WithCancel(ctx)
	c.cycleCancel = cancel
	c.state = StateUploading
	c.mu.Unlock()

	if err := c.runCycle(cycleCtx); err != nil {
		return c.fail(err)
	}
	return nil
}

func (c *Controller) runCycle(ctx context.Context) error {
	blobs, err := c.recorder.Stop(ctx)
	if err != nil {
		return err
	}

	// The snapshot taken here, not at recording start, is the id space the
	// inference response correlates to.
	var fields []form.Field
	if err := c.stage(ctx, "extract", func(ctx context.Context) error {
		var err error
		fields, err = form.Extract(c.forms.ScribeForm())
		return err
	}); err != nil {
		return err
	}
	c.mu.Lock()
	c.fields = fields
	c.mu.Unlock()

	var sessionID string
	if err := c.stage(ctx, "create_session", func(ctx context.Context) error {
		var err error
		sessionID, err = c.backend.Create(ctx, form.Hydrate(fields))
		return err
	}); err != nil {
		return err
	}
	c.mu.Lock()
	c.sessionID = sessionID
	c.mu.Unlock()

	if err := c.stage(ctx, "upload", func(ctx context.Context) error {
		g, gctx := errgroup.WithContext(ctx)
		for _, blob := range blobs {
			g.Go(func() error {
				return c.backend.AttachAudio(gctx, sessionID, blob)
			})
		}
		return g.Wait()
	}); err != nil {
		return err
	}

	if err := c.backend.MarkReady(ctx, sessionID); err != nil {
		return err
	}

	if err := c.transition(ctx, StateTranscribing); err != nil {
		return err
	}
	var transcript string
	if err := c.stage(ctx, "transcribe", func(ctx context.Context) error {
		var err error
		transcript, err = c.backend.Poll(ctx, sessionID, session.AwaitTranscript)
		return err
	}); err != nil {
		return err
	}
	c.mu.Lock()
	c.transcript = transcript
	c.mu.Unlock()

	return c.think(ctx, sessionID, fields)
}

// think polls the inference response, reconciles it against the field
// snapshot and enters review.
func (c *Controller) think(ctx context.Context, sessionID string, fields []form.Field) error {
	if err := c.transition(ctx, StateThinking); err != nil {
		return err
	}

	var raw string
	if err := c.stage(ctx, "infer", func(ctx context.Context) error {
		var err error
		raw, err = c.backend.Poll(ctx, sessionID, session.AwaitAIResponse)
		return err
	}); err != nil {
		return err
	}

	resp, err := reconcile.ParseResponse(raw)
	if err != nil {
		return err
	}
	suggestions := reconcile.Suggestions(resp, fields)

	// A cancelled cycle must not preview anything into the live form.
	if err := ctx.Err(); err != nil {
		return err
	}
	nav := review.NewNavigator(suggestions, c.overlay, c.reviewCfg, c.log)
	c.mu.Lock()
	if err := ctx.Err(); err != nil {
		c.mu.Unlock()
		nav.Close()
		return err
	}
	c.navigator = nav
	c.state = StateReviewing
	c.mu.Unlock()

	c.log.Info("entering review", map[string]interface{}{
		logger.FieldSession: sessionID,
		"suggestions":       len(suggestions),
	})
	if len(suggestions) == 0 {
		c.notifier.Info("No changes were suggested for this form.")
	}
	return nil
}

// UpdateTranscript resubmits an edited transcript and re-runs inference
// over the same field snapshot. A transcript identical to the last one is
// a no-op.
func (c *Controller) UpdateTranscript(ctx context.Context, text string) error {
	c.mu.Lock()
	if c.state != StateReviewing {
		state := c.state
		c.mu.Unlock()
		return errors.Validation("Cannot edit the transcript in state " + string(state) + ".")
	}
	if text == c.transcript {
		c.mu.Unlock()
		return nil
	}
	nav := c.navigator
	c.navigator = nil
	sessionID := c.sessionID
	fields := c.fields
	c.transcript = text
	if c.cycleCancel != nil {
		c.cycleCancel()
	}
	cycleCtx, cancel := context.WithCancel(ctx)
	c.cycleCancel = cancel
	c.state = StateThinking
	c.mu.Unlock()

	if nav != nil {
		nav.Close()
	}

	if err := c.backend.SubmitTranscript(cycleCtx, sessionID, text); err != nil {
		return c.fail(err)
	}
	if err := c.think(cycleCtx, sessionID, fields); err != nil {
		return c.fail(err)
	}
	return nil
}

// Finish commits a completed review: the navigator's verdicts are
// returned, the review surface is torn down and the controller goes back
// to IDLE, ready for the next recording. Every suggestion must have been
// walked past first.
func (c *Controller) Finish() ([]review.ReviewedSuggestion, error) {
	c.mu.Lock()
	if c.state != StateReviewing {
		state := c.state
		c.mu.Unlock()
		return nil, errors.Validation("Cannot finish a review in state " + string(state) + ".")
	}
	nav := c.navigator
	if nav != nil && !nav.Finished() {
		c.mu.Unlock()
		return nil, errors.Validation("The review still has undecided suggestions.")
	}
	if c.cycleCancel != nil {
		c.cycleCancel()
		c.cycleCancel = nil
	}
	c.navigator = nil
	c.sessionID = ""
	c.fields = nil
	c.transcript = ""
	c.state = StateIdle
	c.mu.Unlock()

	var results []review.ReviewedSuggestion
	if nav != nil {
		results = nav.Results()
		nav.Close()
	}
	c.recorder.Reset()
	c.log.Info("review committed", map[string]interface{}{"verdicts": len(results)})
	return results, nil
}

// Cancel aborts whatever is in flight and returns to IDLE. Any active poll
// stops through the cycle context; an orphaned remote session is
// tolerated, no cleanup call is made.
func (c *Controller) Cancel() {
	c.mu.Lock()
	if c.cycleCancel != nil {
		c.cycleCancel()
		c.cycleCancel = nil
	}
	nav := c.navigator
	c.navigator = nil
	c.sessionID = ""
	c.fields = nil
	c.transcript = ""
	c.state = StateIdle
	c.mu.Unlock()

	if nav != nil {
		nav.Close()
	}
	c.recorder.Reset()
	c.log.Info("cycle cancelled")
}

// fail aborts the cycle: the user is notified, the cycle context is
// cancelled and the state moves to FAILED until StartRecording or Cancel.
// A cycle already cancelled back to IDLE stays there; cancellation is not
// an error the user needs to hear about.
func (c *Controller) fail(err error) error {
	c.mu.Lock()
	if c.state == StateIdle {
		c.mu.Unlock()
		return err
	}
	if c.cycleCancel != nil {
		c.cycleCancel()
		c.cycleCancel = nil
	}
	nav := c.navigator
	c.navigator = nil
	c.state = StateFailed
	c.mu.Unlock()

	if nav != nil {
		nav.Close()
	}
	c.notifier.Error(errors.UserMessage(err))
	c.log.Error("cycle failed", map[string]interface{}{"error": err.Error()})
	return err
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
	c.log.Debug("state changed", map[string]interface{}{logger.FieldState: string(s)})
}

// transition is setState for stages running under a cycle context: once
// that context is cancelled the move is refused, so a stage resolving
// after Cancel cannot revive the cycle.
func (c *Controller) transition(ctx context.Context, s State) error {
	c.mu.Lock()
	if err := ctx.Err(); err != nil {
		c.mu.Unlock()
		return err
	}
	c.state = s
	c.mu.Unlock()
	c.log.Debug("state changed", map[string]interface{}{logger.FieldState: string(s)})
	return nil
}

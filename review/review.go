// Package review walks the suggestion list one field at a time. Each slot
// previews the proposed value into the live control under a focus
// highlight; the user's accept/reject verdicts accumulate into the final
// deliverable of a recording cycle.
package review

import (
	"time"

	"github.com/kbukum/scribe/config"
	"github.com/kbukum/scribe/form"
	"github.com/kbukum/scribe/logger"
	"github.com/kbukum/scribe/reconcile"
)

// Overlay is the visual surface review drives: scrolling, the focus
// highlight, and the scroll spacer that keeps the highlighted control
// clear of the fixed review toolbar.
type Overlay interface {
	ScrollTo(r form.Rect)
	Highlight(r form.Rect)
	Clear()
	ReserveScrollSpace()
	ReleaseScrollSpace()
}

// ReviewedSuggestion is one suggestion plus its verdict.
type ReviewedSuggestion struct {
	Suggestion reconcile.Suggestion
	Index      int
	Approved   bool
}

type verdict int

const (
	verdictUndecided verdict = iota
	verdictApproved
	verdictRejected
)

// Navigator is a linear cursor over the suggestion list. It is not safe
// for concurrent use; review is driven by a single user interaction loop.
type Navigator struct {
	suggestions []reconcile.Suggestion
	overlay     Overlay
	delay       time.Duration
	log         *logger.Logger

	cursor    int
	verdicts  []verdict
	snapshots []*string
	captured  []bool
	finished  bool
	closed    bool
	results   []ReviewedSuggestion
}

// NewNavigator starts a review over the given suggestions. Scroll space is
// reserved immediately and held until Close. An empty suggestion list
// finishes at once with no verdicts.
func NewNavigator(suggestions []reconcile.Suggestion, overlay Overlay, cfg config.ReviewConfig, log *logger.Logger) *Navigator {
	if log == nil {
		log = logger.Nop()
	}
	n := &Navigator{
		suggestions: suggestions,
		overlay:     overlay,
		delay:       cfg.AdvanceDelay,
		log:         log.WithComponent("review"),
		verdicts:    make([]verdict, len(suggestions)),
		snapshots:   make([]*string, len(suggestions)),
		captured:    make([]bool, len(suggestions)),
	}
	n.overlay.ReserveScrollSpace()
	if len(suggestions) == 0 {
		n.finish()
		return n
	}
	n.enter(0)
	return n
}

// Cursor returns the current slot index.
func (n *Navigator) Cursor() int { return n.cursor }

// Current returns the suggestion under the cursor.
func (n *Navigator) Current() (reconcile.Suggestion, bool) {
	if n.finished || n.cursor >= len(n.suggestions) {
		return reconcile.Suggestion{}, false
	}
	return n.suggestions[n.cursor], true
}

// Finished reports whether every slot has been walked past.
func (n *Navigator) Finished() bool { return n.finished }

// Results returns the verdict list once the review has finished.
func (n *Navigator) Results() []ReviewedSuggestion { return n.results }

// Accept approves the current suggestion, leaving the previewed value in
// the control, and advances.
func (n *Navigator) Accept() {
	if n.finished {
		return
	}
	n.verdicts[n.cursor] = verdictApproved
	n.log.Debug("suggestion accepted", map[string]interface{}{
		logger.FieldFieldID: n.suggestions[n.cursor].Field.ID,
	})
	n.advance()
}

// Reject restores the control to its pre-preview value and advances.
func (n *Navigator) Reject() {
	if n.finished {
		return
	}
	n.restore(n.cursor)
	n.verdicts[n.cursor] = verdictRejected
	n.log.Debug("suggestion rejected", map[string]interface{}{
		logger.FieldFieldID: n.suggestions[n.cursor].Field.ID,
	})
	n.advance()
}

// Back moves the cursor to the previous slot, floored at 0. The current
// slot's preview is undone first so it does not leak into the form; its
// recorded verdict, if any, is kept until overwritten.
func (n *Navigator) Back() {
	if n.finished || n.cursor == 0 {
		return
	}
	n.restore(n.cursor)
	n.cursor--
	n.enter(n.cursor)
}

// Close tears the review surface down. Safe to call on any exit path and
// more than once; the scroll spacer is always released.
func (n *Navigator) Close() {
	if n.closed {
		return
	}
	n.closed = true
	n.overlay.Clear()
	n.overlay.ReleaseScrollSpace()
}

// enter focuses slot i: scroll, highlight, snapshot the live value once,
// then preview the suggested value in place. A control that cannot be read
// or written is skipped with a warning rather than crashing the review.
func (n *Navigator) enter(i int) {
	s := n.suggestions[i]
	if s.Field.Control == nil {
		n.skip(i, "control missing")
		return
	}

	bounds := s.Field.Control.Bounds()
	n.overlay.ScrollTo(bounds)
	n.overlay.Highlight(bounds)

	if !n.captured[i] {
		if v, ok := s.Field.Control.Value(); ok {
			value := v
			n.snapshots[i] = &value
		}
		n.captured[i] = true
	}

	if err := s.Field.Control.SetValue(s.Value); err != nil {
		n.skip(i, err.Error())
	}
}

// skip records a slot whose control is unusable and moves on without a
// user verdict.
func (n *Navigator) skip(i int, reason string) {
	n.log.Warn("skipping unreviewable field", map[string]interface{}{
		logger.FieldFieldID: n.suggestions[i].Field.ID,
		"reason":            reason,
	})
	n.verdicts[i] = verdictRejected
	n.cursor++
	if n.cursor >= len(n.suggestions) {
		n.finish()
		return
	}
	n.enter(n.cursor)
}

// advance waits the configured settle delay, then moves to the next slot
// or finalizes past the end.
func (n *Navigator) advance() {
	if n.delay > 0 {
		time.Sleep(n.delay)
	}
	n.cursor++
	if n.cursor >= len(n.suggestions) {
		n.finish()
		return
	}
	n.enter(n.cursor)
}

// restore undoes slot i's preview, writing the pre-review value back. A
// nil snapshot means the control had no value; the best available
// equivalent is clearing it.
func (n *Navigator) restore(i int) {
	control := n.suggestions[i].Field.Control
	if control == nil || !n.captured[i] {
		return
	}
	value := ""
	if n.snapshots[i] != nil {
		value = *n.snapshots[i]
	}
	if err := control.SetValue(value); err != nil {
		n.log.Warn("could not restore field value", map[string]interface{}{
			logger.FieldFieldID: n.suggestions[i].Field.ID,
			"reason":            err.Error(),
		})
	}
}

func (n *Navigator) finish() {
	n.finished = true
	n.results = make([]ReviewedSuggestion, len(n.suggestions))
	for i, s := range n.suggestions {
		n.results[i] = ReviewedSuggestion{
			Suggestion: s,
			Index:      i,
			Approved:   n.verdicts[i] == verdictApproved,
		}
	}
	n.overlay.Clear()
}

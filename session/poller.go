package session

import (
	"context"
	"time"

	"github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/logger"
)

const defaultPollInterval = 2500 * time.Millisecond

// Poll reads the session at a fixed cadence until it stops being pending,
// then resolves with the awaited datum.
//
// Terminal conditions, in precedence order: FAILED fails the poll with
// TranscriptionFailed; any other non-pending status resolves with the
// awaited datum when present, or fails with AwaitedFieldUnavailable when
// the backend finished without producing it. A transport error on any tick
// aborts immediately; the only thing retried is "not ready yet".
func (c *Client) Poll(ctx context.Context, id string, await Await) (string, error) {
	interval := c.pollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}

		sess, err := c.Get(ctx, id)
		if err != nil {
			return "", err
		}
		if sess.Status == StatusFailed {
			return "", errors.TranscriptionFailed()
		}
		if sess.Status.Pending() {
			c.log.Debug("still pending", map[string]interface{}{
				logger.FieldSession: id,
				"status":            string(sess.Status),
				"awaiting":          string(await),
			})
			continue
		}

		datum := await.datum(sess)
		if datum == "" {
			return "", errors.AwaitedFieldUnavailable(string(await))
		}
		return datum, nil
	}
}

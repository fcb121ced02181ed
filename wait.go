package ratelimiter

import (
	"context"
	"errors"
	"time"

	"github.com/jassus213/gcra-limiter/clock"
)

// SleepUntilReady reads how long remains until err's retry instant from
// c's current reading (NotYetError.WaitTimeFrom), then blocks on a real
// timer for that long, or until ctx is canceled (spec §4.5's
// cooperative-wait helper). c is read once; advancing it during the sleep
// does not shorten the sleep. err must be a *NotYetError, as returned by Check/CheckKey; any
// other error is returned unchanged without sleeping. A nil err returns
// immediately with a nil error — the request already conformed.
//
// This is a convenience for callers who want to block-and-retry rather
// than propagate the rejection; it is never called internally by
// DirectLimiter or KeyedLimiter themselves.
func SleepUntilReady(ctx context.Context, c clock.Clock, err error) error {
	if err == nil {
		return nil
	}
	var notYet *NotYetError
	if !errors.As(err, &notYet) {
		return err
	}

	wait := notYet.WaitTimeFrom(c)
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

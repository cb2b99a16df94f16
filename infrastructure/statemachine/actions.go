package statemachine

import (
	"time"

	"github.com/felixgeelhaar/statekit"
)

// closeSession stamps the terminal state reached by event.
// Actions receive **Context because the machine context is *Context.
func closeSession(ctx **Context, event statekit.Event) {
	if ctx == nil || *ctx == nil {
		return
	}

	c := *ctx
	c.Outcome = outcomeOf(event.Type)
	c.ClosedAt = time.Now()
}

// discardAndClose drops anything built so far and closes the session.
func discardAndClose(ctx **Context, event statekit.Event) {
	if ctx == nil || *ctx == nil {
		return
	}
	(*ctx).Result = nil
	closeSession(ctx, event)
}

func outcomeOf(eventType statekit.EventType) SessionState {
	switch eventType {
	case EventCommit:
		return StateCommitted
	case EventCancel:
		return StateCancelled
	default:
		return StateStaging
	}
}

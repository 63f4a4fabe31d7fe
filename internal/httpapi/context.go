package httpapi

import (
	"context"
	"net/http"
)

// baseCtx is canceled when the server shuts down.
var baseCtx = context.Background()

// SetBaseContext sets the process-level context that every read derives from.
// nil restores Background.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	baseCtx = ctx
}

// requestContext is the context passed to the Service for one read. It ends
// when the client disconnects or the server shuts down, and after
// requestTimeout when one is set.
func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	ctx, cancel := joinContexts(baseCtx, r.Context())
	if requestTimeout <= 0 {
		return ctx, cancel
	}
	tctx, tcancel := context.WithTimeout(ctx, requestTimeout)
	return tctx, func() {
		tcancel()
		cancel()
	}
}

// joinContexts derives from b, keeping its values, and is canceled with a's
// cause once a is done.
func joinContexts(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(b)
	stop := context.AfterFunc(a, func() { cancel(context.Cause(a)) })
	return ctx, func() {
		stop()
		cancel(context.Canceled)
	}
}

package async

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/marketplace-labs/briefdesk/pkg/utils/errutil"
	"github.com/marketplace-labs/briefdesk/pkg/utils/logging"
)

// Dispatch runs handler in a new goroutine detached from the request
// lifetime. The logger bound to ctx is carried over. Errors and panics are
// logged and reported, never returned.
func Dispatch(ctx context.Context, name string, handler func(ctx context.Context) error) {
	bgCtx := logging.With(context.Background(), logging.From(ctx).With("task", name))

	go func() {
		defer func() {
			if r := recover(); r != nil {
				errutil.Handle(bgCtx, goerr.New(fmt.Sprintf("panic: %v", r)), "panic in async task")
			}
		}()

		if err := handler(bgCtx); err != nil {
			errutil.Handle(bgCtx, err, "async task failed")
		}
	}()
}

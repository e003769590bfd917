package safe

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/marketplace-labs/briefdesk/pkg/utils/logging"
)

// Close closes closer and logs a failure instead of returning it. Nil is ignored.
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Warn("failed to close",
			slog.String("closer", fmt.Sprintf("%T", closer)),
			slog.Any("error", err),
		)
	}
}

// Write writes data to w and logs a failure. Used once headers are committed
// and the error can no longer reach the client.
func Write(ctx context.Context, w io.Writer, data []byte) {
	if w == nil {
		return
	}
	if n, err := w.Write(data); err != nil {
		logging.From(ctx).Warn("failed to write",
			slog.Int("written", n),
			slog.Int("size", len(data)),
			slog.Any("error", err),
		)
	}
}

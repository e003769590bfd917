package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/marketplace-labs/briefdesk/pkg/utils/logging"
)

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx := logging.With(context.Background(), logger)
	logging.From(ctx).Info("hello", "brief_id", "1234")

	gt.String(t, buf.String()).Contains(`"brief_id":"1234"`)
}

func TestFromWithoutLogger(t *testing.T) {
	gt.Value(t, logging.From(context.Background())).Equal(logging.Default())
}

func TestSetDefaultIgnoresNil(t *testing.T) {
	current := logging.Default()
	logging.SetDefault(nil)
	gt.Value(t, logging.Default()).Equal(current)
}

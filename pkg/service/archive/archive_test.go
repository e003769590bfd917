package archive_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/marketplace-labs/briefdesk/pkg/service/archive"
)

func TestKey(t *testing.T) {
	a := archive.Key("1234", "supplier-responses-tea.ods")
	b := archive.Key("1234", "supplier-responses-tea.ods")

	gt.Bool(t, strings.HasPrefix(a, "reports/1234/")).True()
	gt.Bool(t, strings.HasSuffix(a, "/supplier-responses-tea.ods")).True()
	gt.Value(t, a).NotEqual(b)
}

func TestMemory(t *testing.T) {
	m := archive.NewMemory()
	data := []byte("a,b\r\n")

	gt.NoError(t, m.Put(context.Background(), "reports/1/x/a.csv", "text/csv", data)).Required()
	data[0] = 'z'

	objects := m.Objects()
	gt.Array(t, objects).Length(1).Required()
	gt.Value(t, objects[0].Key).Equal("reports/1/x/a.csv")
	gt.Value(t, objects[0].ContentType).Equal("text/csv")
	gt.Value(t, string(objects[0].Data)).Equal("a,b\r\n")
}

func TestGCS(t *testing.T) {
	bucket := os.Getenv("TEST_ARCHIVE_BUCKET")
	if bucket == "" {
		t.Skip("TEST_ARCHIVE_BUCKET is not set")
	}

	ctx := context.Background()
	g, err := archive.New(ctx, bucket, archive.WithPrefix("test"))
	gt.NoError(t, err).Required()
	defer g.Close()

	gt.NoError(t, g.Put(ctx, archive.Key("test", "report.csv"), "text/csv", []byte("a\r\n")))
}

package cli_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/marketplace-labs/briefdesk/pkg/cli"
)

func TestRun_ValidateCommand_Bundled(t *testing.T) {
	err := cli.Run(context.Background(), []string{"briefdesk", "validate"}, "test")
	gt.NoError(t, err)
}

func TestRun_ValidateCommand_ValidDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "content")
	gt.NoError(t, os.MkdirAll(filepath.Join(dir, "dos"), 0o755)).Required()

	manifest := `
name = "output_brief_response"

[[section]]
slug = "view-response-to-requirements"
name = "View response to requirements"

  [[section.question]]
  id = "supplierName"
  name = "Supplier"
  type = "text"
`
	gt.NoError(t, os.WriteFile(filepath.Join(dir, "dos", "output_brief_response.toml"), []byte(manifest), 0o600)).Required()

	err := cli.Run(context.Background(), []string{"briefdesk", "validate", "--content-dir", dir}, "test")
	gt.NoError(t, err)
}

func TestRun_ValidateCommand_InvalidDir(t *testing.T) {
	dir := filepath.Join("..", "service", "content", "testdata")

	err := cli.Run(context.Background(), []string{"briefdesk", "validate", "--content-dir", dir}, "test")
	gt.Error(t, err).Is(cli.ErrInvalidContent)
}

func TestRun_ValidateCommand_EmptyDir(t *testing.T) {
	err := cli.Run(context.Background(), []string{"briefdesk", "validate", "--content-dir", t.TempDir()}, "test")
	gt.Error(t, err).Is(cli.ErrInvalidContent)
}

func TestRun_ExportCommand(t *testing.T) {
	out := t.TempDir()
	seedPath := filepath.Join("..", "repository", "seed", "testdata", "seed.toml")

	err := cli.Run(context.Background(), []string{
		"briefdesk", "export",
		"--seed", seedPath,
		"--buyer-id", "123",
		"--lot", "digital-specialists",
		"--brief-id", "1234",
		"--out", out,
	}, "test")
	gt.NoError(t, err).Required()

	entries, err := os.ReadDir(out)
	gt.NoError(t, err).Required()
	gt.Array(t, entries).Length(1).Required()
	gt.Value(t, entries[0].Name()).Equal("supplier-responses-i-need-a-thing-to-do-a-thing.csv")
}

func TestRun_ExportCommand_OtherBuyer(t *testing.T) {
	seedPath := filepath.Join("..", "repository", "seed", "testdata", "seed.toml")

	err := cli.Run(context.Background(), []string{
		"briefdesk", "export",
		"--seed", seedPath,
		"--buyer-id", "999",
		"--lot", "digital-specialists",
		"--brief-id", "1234",
		"--out", t.TempDir(),
	}, "test")
	gt.Error(t, err)
}

func TestRun_ExportLogsSettings(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "briefdesk.log")
	seedPath := filepath.Join("..", "repository", "seed", "testdata", "seed.toml")

	err := cli.Run(context.Background(), []string{
		"briefdesk",
		"--log-level", "debug",
		"--log-format", "json",
		"--log-output", logPath,
		"export",
		"--seed", seedPath,
		"--buyer-id", "123",
		"--lot", "digital-specialists",
		"--brief-id", "1234",
		"--evidence-cutover", "2017-01-15",
		"--out", t.TempDir(),
	}, "test")
	gt.NoError(t, err).Required()

	data, err := os.ReadFile(logPath)
	gt.NoError(t, err).Required()
	gt.String(t, string(data)).Contains("Exporting supplier responses")
	gt.String(t, string(data)).Contains(`"evidence_cutover":"2017-01-15"`)
	gt.String(t, string(data)).Contains("briefdesk finished")
}

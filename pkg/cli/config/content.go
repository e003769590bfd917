package config

import (
	"os"

	"github.com/marketplace-labs/briefdesk/pkg/service/content"
	"github.com/urfave/cli/v3"
)

// Content selects the directory question manifests are read from
type Content struct {
	dir string
}

func (c *Content) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "content-dir",
			Usage:       "Directory of <framework>/<manifest>.toml files (bundled manifests when empty)",
			Category:    "Content",
			Sources:     cli.EnvVars("BRIEFDESK_CONTENT_DIR"),
			Destination: &c.dir,
		},
	}
}

func (c *Content) Dir() string {
	return c.dir
}

func (c *Content) Configure() *content.Loader {
	if c.dir == "" {
		return content.New(content.Defaults())
	}
	return content.New(os.DirFS(c.dir))
}

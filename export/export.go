// Package export defines the contract shared by all output generators.
package export

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/testout/testout/collector"
)

// Generator renders a sealed collection into one output format.
//
// A generator contributes its own CLI flags, reads its configuration once
// at configure time and, at session end, writes its output files. A
// generator whose output paths are not set skips generation silently.
// Generators are iterated from a static list; there is no runtime
// discovery.
type Generator interface {
	// Name identifies the generator in logs and traces.
	Name() string

	// Flags returns the CLI flags this generator contributes to the
	// host's option surface.
	Flags() []cli.Flag

	// Configure reads the parsed options. It runs once, before any item
	// is collected.
	Configure(cliCtx *cli.Context) error

	// Generate renders the collection into the target format and writes
	// it to disk.
	Generate(ctx context.Context, data *collector.Collection) error
}

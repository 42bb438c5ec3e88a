// Package cli implements the gazetteer command-line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"gazetteer-service/internal/bootstrap"
	"gazetteer-service/internal/config"
	"gazetteer-service/internal/gazetteer"
	"gazetteer-service/internal/platform/obs"
)

// Output formats for query results.
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

type options struct {
	cfg    config.Config
	output string
}

// NewRootCommand builds the gazetteer command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{cfg: config.Load()}

	root := &cobra.Command{
		Use:   "gazetteer",
		Short: "Query the ancient Greek settlements gazetteer",
		Long: `Query a catalog of ancient Greek settlements by name, type, bounding box
or proximity. The catalog is read from the embedded dataset unless --source,
--kind or the SOURCE_* environment variables select another one.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			obs.SetupLogger(opts.cfg.LogLevel, opts.cfg.LogFormat)
			if opts.output != OutputTable && opts.output != OutputJSON {
				return fmt.Errorf("unknown output format %q (want table or json)", opts.output)
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.cfg.SourcePath, "source", opts.cfg.SourcePath, "catalog file (json, yaml or js)")
	pf.StringVar(&opts.cfg.SourceKind, "kind", opts.cfg.SourceKind, "source kind: embedded, json, yaml, js, sqlite or postgres")
	pf.StringVar(&opts.cfg.DBPath, "db", opts.cfg.DBPath, "SQLite database path for --kind sqlite")
	pf.StringVarP(&opts.output, "format", "o", OutputTable, "output format: table or json")

	root.AddCommand(
		newListCommand(opts),
		newGetCommand(opts),
		newSearchCommand(opts),
		newTypeCommand(opts),
		newBBoxCommand(opts),
		newNearestCommand(opts),
		newTypesCommand(opts),
		newDuplicatesCommand(opts),
		newExportCommand(opts),
		newCheckCommand(opts),
	)

	return root
}

func (o *options) load(ctx context.Context) (*gazetteer.Gazetteer, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return bootstrap.LoadGazetteer(ctx, o.cfg)
}

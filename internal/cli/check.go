package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gazetteer-service/internal/bootstrap"
	"gazetteer-service/internal/domain"
)

// newCheckCommand validates a source without building a gazetteer and reports every issue.
func newCheckCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the catalog and report every offending record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, closeSrc, err := bootstrap.OpenSource(opts.cfg)
			if err != nil {
				return err
			}
			defer func() { _ = closeSrc() }()

			candidates, err := src.ListCandidates(cmd.Context())
			if err != nil {
				return err
			}

			valid, issues := domain.Validate(candidates)
			w := cmd.OutOrStdout()
			if len(issues) == 0 {
				_, _ = fmt.Fprintf(w, "ok: %d records\n", len(valid))
				return nil
			}

			if err := renderIssues(w, opts.output, issues); err != nil {
				return err
			}
			return fmt.Errorf("%d of %d records invalid", len(candidates)-len(valid), len(candidates))
		},
	}
}

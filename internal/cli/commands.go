package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gazetteer-service/internal/adapters/export"
	"gazetteer-service/internal/domain"
	"gazetteer-service/internal/gazetteer"
)

func newListCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every settlement in load order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			return renderSettlements(cmd.OutOrStdout(), opts.output, g.All())
		},
	}
}

func newGetCommand(opts *options) *cobra.Command {
	var lat, lng float64
	cmd := &cobra.Command{
		Use:   "get <ancient-name>",
		Short: "Show the settlement with this exact name and coordinates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			s, ok := g.Get(domain.Identity{AncientName: args[0], Latitude: lat, Longitude: lng})
			if !ok {
				return fmt.Errorf("no settlement %q at %v,%v", args[0], lat, lng)
			}
			return renderSettlements(cmd.OutOrStdout(), opts.output, []domain.Settlement{s})
		},
	}
	f := cmd.Flags()
	f.Float64Var(&lat, "lat", 0, "latitude in degrees")
	f.Float64Var(&lng, "lng", 0, "longitude in degrees")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lng")
	return cmd
}

func newSearchCommand(opts *options) *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "search <name>",
		Short: "Find settlements by ancient or modern name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, ok := gazetteer.ParseMatchMode(mode)
			if !ok {
				return fmt.Errorf("unknown match mode %q (want exact, ci, prefix or substring)", mode)
			}
			g, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			res, err := g.FindByName(args[0], m)
			if err != nil {
				return err
			}
			return renderSettlements(cmd.OutOrStdout(), opts.output, res)
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", "ci", "match mode: exact, ci, prefix or substring")
	return cmd
}

func newTypeCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "type <tag>",
		Short: "List settlements with exactly this type tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			return renderSettlements(cmd.OutOrStdout(), opts.output, g.FindByType(args[0]))
		},
	}
}

func newBBoxCommand(opts *options) *cobra.Command {
	var minLat, minLng, maxLat, maxLng float64
	cmd := &cobra.Command{
		Use:   "bbox",
		Short: "List settlements inside a latitude/longitude box (bounds inclusive)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			res, err := g.FindWithinBoundingBox(minLat, minLng, maxLat, maxLng)
			if err != nil {
				return err
			}
			return renderSettlements(cmd.OutOrStdout(), opts.output, res)
		},
	}
	f := cmd.Flags()
	f.Float64Var(&minLat, "min-lat", -90, "southern bound")
	f.Float64Var(&minLng, "min-lng", -180, "western bound")
	f.Float64Var(&maxLat, "max-lat", 90, "northern bound")
	f.Float64Var(&maxLng, "max-lng", 180, "eastern bound")
	return cmd
}

func newNearestCommand(opts *options) *cobra.Command {
	var lat, lng float64
	var k int
	cmd := &cobra.Command{
		Use:   "nearest",
		Short: "List the k settlements closest to a point",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			res, err := g.FindNearest(lat, lng, k)
			if err != nil {
				return err
			}
			return renderNeighbors(cmd.OutOrStdout(), opts.output, res)
		},
	}
	f := cmd.Flags()
	f.Float64Var(&lat, "lat", 0, "latitude in degrees")
	f.Float64Var(&lng, "lng", 0, "longitude in degrees")
	f.IntVar(&k, "k", 5, "number of neighbours")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lng")
	return cmd
}

func newTypesCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List type tags with their record counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			return renderTypes(cmd.OutOrStdout(), opts.output, g.Types())
		},
	}
}

func newDuplicatesCommand(opts *options) *cobra.Command {
	var maxKm float64
	cmd := &cobra.Command{
		Use:   "duplicates",
		Short: "Report groups of records that look like the same place",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			groups, err := g.DuplicateCandidates(maxKm)
			if err != nil {
				return err
			}
			return renderGroups(cmd.OutOrStdout(), opts.output, groups)
		},
	}
	cmd.Flags().Float64Var(&maxKm, "max-km", gazetteer.DefaultDuplicateRadiusKm, "maximum distance between grouped records")
	return cmd
}

func newExportCommand(opts *options) *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the whole catalog as json, geojson or js",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			return export.Write(cmd.OutOrStdout(), to, g.All())
		},
	}
	cmd.Flags().StringVar(&to, "to", export.FormatJSON, "export format: json, geojson or js")
	return cmd
}

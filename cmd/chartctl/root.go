package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"Jyotisa/internal/di"
	"Jyotisa/internal/domain/models"
	"Jyotisa/pkg/config"
)

type birthFlags struct {
	date     string
	clock    string
	offset   float64
	lat      float64
	lon      float64
	ayanamsa string
}

func (b *birthFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&b.date, "date", "", "birth date, YYYY-MM-DD")
	f.StringVar(&b.clock, "time", "", "local birth time, HH:MM[:SS]")
	f.Float64Var(&b.offset, "tz", 0, "UTC offset in hours")
	f.Float64Var(&b.lat, "lat", 0, "latitude in degrees")
	f.Float64Var(&b.lon, "lon", 0, "longitude in degrees")
	f.StringVar(&b.ayanamsa, "ayanamsa", "LAHIRI", "LAHIRI, RAMAN or KRISHNAMURTI")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")
}

func (b *birthFlags) input() models.BirthInput {
	return models.BirthInput{
		Date:      b.date,
		Time:      b.clock,
		UTCOffset: b.offset,
		Latitude:  b.lat,
		Longitude: b.lon,
		Ayanamsa:  b.ayanamsa,
	}
}

type cli struct {
	configPath string
	timeout    time.Duration
	engines    *di.Engines
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "chartctl",
		Short:         "Compute sidereal charts from the command line",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadWithEnv(c.configPath)
			if err != nil {
				return err
			}
			c.engines, err = di.InitializeEngines(cfg)
			return err
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file path, defaults only when empty")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 30*time.Second, "overall deadline")

	root.AddCommand(c.chartCmd(), c.transitsCmd(), c.hitsCmd(), c.eventCmd())
	return root
}

func (c *cli) run(cmd *cobra.Command, fn func(ctx context.Context) (any, error)) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), c.timeout)
	defer cancel()
	out, err := fn(ctx)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), out)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func (c *cli) chartCmd() *cobra.Command {
	var b birthFlags
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Full natal report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(ctx context.Context) (any, error) {
				return c.engines.Reports.Report(ctx, b.input(), "")
			})
		},
	}
	b.register(cmd)
	return cmd
}

func (c *cli) transitsCmd() *cobra.Command {
	var lat, lon float64
	cmd := &cobra.Command{
		Use:   "transits",
		Short: "Current planetary positions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(ctx context.Context) (any, error) {
				return c.engines.Transits.Now(ctx, lat, lon)
			})
		},
	}
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude in degrees")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude in degrees")
	return cmd
}

func (c *cli) hitsCmd() *cobra.Command {
	var (
		b   birthFlags
		orb float64
	)
	cmd := &cobra.Command{
		Use:   "hits",
		Short: "Transits within orb of natal positions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("orb") {
				orb = c.engines.Transits.DefaultOrb()
			}
			return c.run(cmd, func(ctx context.Context) (any, error) {
				return c.engines.Transits.Hits(ctx, b.input(), orb)
			})
		},
	}
	b.register(cmd)
	cmd.Flags().Float64Var(&orb, "orb", 3, "orb in degrees (default engine.transit_orb)")
	return cmd
}

func (c *cli) eventCmd() *cobra.Command {
	var b birthFlags
	cmd := &cobra.Command{
		Use:   "event <category>",
		Short: "Evaluate a life-event category against the running dasha",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context) (any, error) {
				return c.engines.Events.Analyze(ctx, b.input(), args[0])
			})
		},
	}
	b.register(cmd)
	return cmd
}

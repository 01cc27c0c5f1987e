package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/ceb-outages/internal/config"
	"github.com/pfrederiksen/ceb-outages/internal/filter"
	"github.com/pfrederiksen/ceb-outages/internal/logger"
	"github.com/pfrederiksen/ceb-outages/internal/observability"
	"github.com/pfrederiksen/ceb-outages/internal/outage"
	"github.com/pfrederiksen/ceb-outages/internal/scraper"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	input       string
	url         string
	timeout     time.Duration
	policy      string
	workers     int
	logLevel    string
	metricsFile string

	cfg      *config.Config
	registry *prometheus.Registry
	metrics  *observability.Metrics
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "ceb-outages",
		Short: "Show scheduled power outages published by the CEB",
		Long: `A CLI tool to read the scheduled power outages published by the
Central Electricity Board of Mauritius, region by region.

Settings can also be given through CEB_OUTAGES_URL, CEB_OUTAGES_TIMEOUT,
CEB_OUTAGES_POLICY, CEB_OUTAGES_WORKERS and LOG_LEVEL; flags take precedence.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: opts.setup,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.input, "input", "", "Read the region JSON from a file ('-' for stdin) instead of fetching")
	flags.StringVar(&opts.url, "url", scraper.OutagePageURL, "Outage page URL")
	flags.DurationVar(&opts.timeout, "timeout", scraper.Timeout, "HTTP timeout")
	flags.StringVar(&opts.policy, "policy", "strict", "Region failure policy: strict or lenient")
	flags.IntVar(&opts.workers, "workers", 4, "Regions parsed concurrently")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run")

	cmd.AddCommand(newRegionsCmd(opts), newShowCmd(opts))

	return cmd
}

// setup merges environment configuration with explicitly set flags.
func (o *rootOptions) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("url") {
		if err := config.ValidateURL(o.url); err != nil {
			return err
		}
		cfg.URL = o.url
	}
	if flags.Changed("timeout") {
		if o.timeout <= 0 {
			return fmt.Errorf("invalid timeout: %s", o.timeout)
		}
		cfg.Timeout = o.timeout
	}
	if flags.Changed("policy") {
		if cfg.Policy, err = outage.ParsePolicy(o.policy); err != nil {
			return err
		}
	}
	if flags.Changed("workers") {
		if o.workers < 1 {
			return fmt.Errorf("invalid workers: %d", o.workers)
		}
		cfg.Workers = o.workers
	}
	if flags.Changed("log-level") {
		if cfg.LogLevel, err = logger.ParseLevel(o.logLevel); err != nil {
			return err
		}
	}

	logger.SetDefault(logger.New(cfg.LogLevel, cmd.ErrOrStderr()))

	o.cfg = cfg
	o.registry = prometheus.NewRegistry()
	o.metrics = observability.NewMetrics(o.registry)
	return nil
}

// loadCatalog reads the region JSON from --input or the outage page and
// builds the catalog.
func (o *rootOptions) loadCatalog(cmd *cobra.Command) (*outage.Catalog, error) {
	buildOpts := []outage.Option{
		outage.WithPolicy(o.cfg.Policy),
		outage.WithWorkers(o.cfg.Workers),
		outage.WithMetrics(o.metrics),
	}

	if o.input == "" {
		logger.Debug("fetching outage page", logger.Fields{"url": o.cfg.URL})
		s := scraper.New(
			scraper.WithURL(o.cfg.URL),
			scraper.WithTimeout(o.cfg.Timeout),
			scraper.WithMetrics(o.metrics),
		)
		c, err := s.FetchCatalog(cmd.Context(), buildOpts...)
		if err != nil {
			return nil, fmt.Errorf("loading outages: %w", err)
		}
		return c, nil
	}

	data, err := o.readInput(cmd.InOrStdin())
	if err != nil {
		return nil, err
	}
	c, err := outage.Build(strings.TrimSpace(string(data)), buildOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading outages: %w", err)
	}
	return c, nil
}

func (o *rootOptions) readInput(stdin io.Reader) ([]byte, error) {
	if o.input == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(o.input)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return data, nil
}

// writeMetrics dumps the registry in the Prometheus text format when
// --metrics-file is set.
func (o *rootOptions) writeMetrics() {
	if o.metricsFile == "" || o.registry == nil {
		return
	}
	if err := prometheus.WriteToTextfile(o.metricsFile, o.registry); err != nil {
		logger.Error("writing metrics", logger.Fields{"path": o.metricsFile}, err)
	}
}

func newRegionsCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "regions",
		Short: "List regions and their outage counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFormat(format, FormatText, FormatJSON)
			if err != nil {
				return err
			}
			defer opts.writeMetrics()

			c, err := opts.loadCatalog(cmd)
			if err != nil {
				return err
			}
			return WriteRegions(cmd.OutOrStdout(), c, f)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")
	return cmd
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	var (
		formatFlag string
		sortOrder  string
		first      bool
		localities []string
		streets    []string
		from       string
		to         string
		weekends   bool
	)

	cmd := &cobra.Command{
		Use:   "show REGION",
		Short: "Print the outages of one region",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(formatFlag, FormatText, FormatJSON, FormatICS)
			if err != nil {
				return err
			}
			order, err := parseSortOrder(sortOrder)
			if err != nil {
				return err
			}

			f := filter.NewFilter()
			f.Localities = localities
			f.Streets = streets
			f.WeekendsOnly = weekends
			if from != "" {
				if f.From, err = filter.ParseDay(from, false); err != nil {
					return err
				}
			}
			if to != "" {
				if f.To, err = filter.ParseDay(to, true); err != nil {
					return err
				}
			}
			defer opts.writeMetrics()

			c, err := opts.loadCatalog(cmd)
			if err != nil {
				return err
			}
			region, err := c.Lookup(args[0])
			if err != nil {
				return err
			}

			if !f.IsEmpty() {
				region = outage.NewRegion(region.Name(), f.Apply(region.Outages()))
			}

			return WriteRegion(cmd.OutOrStdout(), region, format, RegionView{
				Sort:  order,
				First: first,
			})
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", "text", "Output format: text, json or ics")
	cmd.Flags().StringVar(&sortOrder, "sort", string(SortByTable), "Sort order: table, start or locality")
	cmd.Flags().BoolVar(&first, "first", false, "Print only the first outage")
	cmd.Flags().StringSliceVar(&localities, "locality", nil, "Only outages whose locality contains one of these (repeatable)")
	cmd.Flags().StringSliceVar(&streets, "street", nil, "Only outages whose streets contain one of these (repeatable)")
	cmd.Flags().StringVar(&from, "from", "", "Only outages starting on or after this day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Only outages starting on or before this day (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&weekends, "weekends", false, "Only outages on Saturday or Sunday")
	return cmd
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(ExitError)
	}
}

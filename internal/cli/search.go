package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	searchhttp "github.com/flight-search/interconnecting-flights/internal/adapter/http"
	"github.com/flight-search/interconnecting-flights/internal/app"
	"github.com/flight-search/interconnecting-flights/internal/config"
	"github.com/flight-search/interconnecting-flights/internal/infrastructure/logger"
)

// searchOpts holds the command-line flags for the search command.
type searchOpts struct {
	departure string
	arrival   string
	from      string
	to        string
	maxStops  string
	cache     string
	verbose   bool
}

func newSearchCmd() *cobra.Command {
	opts := &searchOpts{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "List itineraries between two airports within a time window",
		Example: `  interconnections search --departure DUB --arrival WRO \
    --from 2018-03-01T07:00 --to 2018-03-03T21:00 --max-stops 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.departure, "departure", "", "departure airport IATA code")
	cmd.Flags().StringVar(&opts.arrival, "arrival", "", "arrival airport IATA code")
	cmd.Flags().StringVar(&opts.from, "from", "", "earliest departure, local time (2006-01-02T15:04)")
	cmd.Flags().StringVar(&opts.to, "to", "", "latest arrival, local time (2006-01-02T15:04)")
	cmd.Flags().StringVar(&opts.maxStops, "max-stops", "", "maximum number of intermediate airports (default from SEARCH_DEFAULT_MAX_STOPS)")
	cmd.Flags().StringVar(&opts.cache, "cache", "", "override CACHE_BACKEND (memory, redis, none)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging on stderr")

	for _, name := range []string{"departure", "arrival", "from", "to"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func runSearch(cmd *cobra.Command, opts *searchOpts) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.cache != "" {
		cfg.Cache.Backend = opts.cache
		if err := cfg.Cache.Validate(); err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}
	}

	logCfg := cfg.LoggerConfig()
	logCfg.Format = "console"
	if opts.verbose {
		logCfg.Level = "debug"
	} else {
		logCfg.Level = "warn"
	}
	log := logger.NewWithOutput(logCfg, cmd.ErrOrStderr())
	logger.SetGlobal(log)
	ctx := log.Into(cmd.Context())

	req := searchhttp.SearchInterconnectionsRequest{
		Departure:         opts.departure,
		DepartureDateTime: opts.from,
		Arrival:           opts.arrival,
		ArrivalDateTime:   opts.to,
		MaxStops:          opts.maxStops,
	}
	criteria, err := req.ToCriteria(searchhttp.StopLimits{
		Default: cfg.Search.DefaultMaxStops,
		Max:     cfg.Search.MaxStopsLimit,
	})
	if err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	search, err := app.NewSearch(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := search.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to release search resources")
		}
	}()

	itineraries, err := search.UseCase.Search(ctx, criteria)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(searchhttp.ToItineraryDTOs(itineraries))
}

// Command easydata is a CLI for the EasyData API: time series downloads,
// recipe grids, saved selections and cache maintenance.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/quantecresearch/easydata-go/internal/config"
	"github.com/quantecresearch/easydata-go/pkg/cache"
	"github.com/quantecresearch/easydata-go/pkg/client"
	"github.com/quantecresearch/easydata-go/pkg/filter"
	"github.com/quantecresearch/easydata-go/pkg/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "easydata",
		Short:         "Query the EasyData statistical data API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newDataCmd(),
		newRecipesCmd(),
		newSelectionsCmd(),
		newGridCmd(),
		newCacheCmd(),
	)
	return root
}

// newClient builds a client from the environment, honoring the useCache
// override from grid and cache commands.
func newClient(useCache bool) (*client.Client, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.LogLevel),
		Pretty: cfg.LogPretty,
	})

	clientCfg := client.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.APIURL
	clientCfg.RespFormat = cache.Format(cfg.RespFormat)
	clientCfg.UseCache = useCache || cfg.UseCache
	clientCfg.CacheDir = cfg.CacheDir

	return client.New(clientCfg)
}

func newDataCmd() *cobra.Command {
	var (
		codes       string
		selectionPK int64
		freq        string
		startYear   string
		endYear     string
		analysis    bool
	)

	cmd := &cobra.Command{
		Use:   "data",
		Short: "Download time series data by code or saved selection",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(false)
			if err != nil {
				return err
			}

			req := client.DataRequest{
				TimeSeriesCodes: codes,
				Freq:            freq,
				StartYear:       startYear,
				EndYear:         endYear,
				Analysis:        analysis,
			}
			if selectionPK > 0 {
				req.SelectionPK = &selectionPK
			}

			result, err := c.GetData(cmd.Context(), req)
			if err != nil {
				return err
			}

			if result.Frame != nil {
				return result.Frame.WriteCSV(cmd.OutOrStdout())
			}
			return writeJSON(cmd, result.JSON)
		},
	}

	cmd.Flags().StringVar(&codes, "codes", "", "comma-separated time series codes")
	cmd.Flags().Int64Var(&selectionPK, "selection-pk", 0, "saved selection primary key")
	cmd.Flags().StringVar(&freq, "freq", "M", "data frequency")
	cmd.Flags().StringVar(&startYear, "start", "", "range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endYear, "end", "", "range end (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&analysis, "analysis", false, "include the analysis parameter")
	return cmd
}

func newRecipesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recipes",
		Short: "List recipes available to the authenticated user",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(false)
			if err != nil {
				return err
			}

			result, err := c.GetRecipes(cmd.Context())
			if err != nil {
				return err
			}

			if result.Frame != nil {
				return result.Frame.WriteCSV(cmd.OutOrStdout())
			}
			return writeJSON(cmd, result.JSON)
		},
	}
}

func newSelectionsCmd() *cobra.Command {
	var (
		status     string
		show       string
		filterFlag string
	)

	cmd := &cobra.Command{
		Use:   "selections",
		Short: "List saved selections",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(false)
			if err != nil {
				return err
			}

			selections, err := c.GetSelections(cmd.Context(), client.SelectionsRequest{
				Status: status,
				Show:   show,
				Filter: filterFlag,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd, selections)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "status flags (e.g. PSO)")
	cmd.Flags().StringVar(&show, "show", "", "restrict to shared or open selections")
	cmd.Flags().StringVar(&filterFlag, "filter", "", "additional filter (e.g. active)")
	return cmd
}

func newGridCmd() *cobra.Command {
	var (
		format     string
		expanded   bool
		melted     bool
		filtersArg string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "grid <recipe-pk>",
		Short: "Download grid data for a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipePK, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("recipe pk must be an integer: %w", err)
			}

			c, err := newClient(!noCache)
			if err != nil {
				return err
			}

			req := client.NewGridRequest(recipePK)
			req.IsExpanded = expanded
			req.IsMelted = melted
			req.RespFormat = cache.Format(format)
			if filtersArg != "" {
				var set filter.Set
				if err := json.Unmarshal([]byte(filtersArg), &set); err != nil {
					return fmt.Errorf("parse filters: %w", err)
				}
				req.Filters = set
			}

			result, err := c.GetGridData(cmd.Context(), req)
			if err != nil {
				return err
			}

			switch {
			case result.Frame != nil:
				return result.Frame.WriteCSV(cmd.OutOrStdout())
			case result.Parquet != nil:
				_, err := cmd.OutOrStdout().Write(result.Parquet)
				return err
			default:
				_, err := fmt.Fprint(cmd.OutOrStdout(), result.CSV)
				return err
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "dataframe", "response format (dataframe, parquet or csv)")
	cmd.Flags().BoolVar(&expanded, "expanded", true, "request the expanded data format")
	cmd.Flags().BoolVar(&melted, "melted", true, "request the melted data format")
	cmd.Flags().StringVar(&filtersArg, "filters", "", "dimension filters as JSON (object or array)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the disk cache")
	return cmd
}

func newCacheCmd() *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the disk cache",
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all cached responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromEnv()
			if err != nil {
				return err
			}

			store, err := cache.NewStore(cfg.CacheDir)
			if err != nil {
				return err
			}

			deleted := store.Clear()
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d cached file(s) from %s\n", deleted, store.Root())
			return nil
		},
	}

	cacheCmd.AddCommand(clearCmd)
	return cacheCmd
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MuhammadHaseebUlHaqq/dv-dashboard/internal/cluster"
	"github.com/MuhammadHaseebUlHaqq/dv-dashboard/internal/ingest"
	"github.com/MuhammadHaseebUlHaqq/dv-dashboard/internal/model"
)

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Partition countries into stable and volatile urbanizers",
	Long: `Run the full clustering pipeline over a country-indicator source file.

Per-country-year rows are aggregated into per-country means, standardized,
and partitioned into two groups with deterministic k-means. The group with
lower mean conflict score and lower mean Gini index is labeled "Stable
Urbanizers"; the other group is "Volatile Urbanizers".

Examples:
  # Cluster a CSV export and print a table
  cluster --input indicators.csv

  # Write all profiles as JSON
  cluster --input indicators.csv --format json --output profiles.json

  # Persist the run so it can be served later
  cluster --input indicators.xlsx --save

  # Legacy Latin-1 export with a tighter iteration cap
  cluster --input legacy.csv --latin1 --max-iterations 50`,
	RunE: runCluster,
}

func init() {
	f := clusterCmd.Flags()
	f.String("input", "", "source file (.csv, .tsv, .xlsx)")
	f.String("format", "table", "output format: table, csv, json, or yaml")
	f.String("output", "", "output file path (default: stdout)")
	f.Int("limit", 0, "maximum number of profiles to output (0=all)")
	f.Bool("save", false, "persist the run and its profiles to the store")
	f.Int("max-iterations", 0, "k-means iteration cap (default from config)")
	f.Bool("latin1", false, "decode the source as ISO 8859-1")
	_ = clusterCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(clusterCmd)
}

func runCluster(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	input, _ := cmd.Flags().GetString("input")
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	limit, _ := cmd.Flags().GetInt("limit")
	save, _ := cmd.Flags().GetBool("save")
	maxIter, _ := cmd.Flags().GetInt("max-iterations")
	latin1, _ := cmd.Flags().GetBool("latin1")

	if !validFormat(format) {
		return eris.Errorf("cluster: --format must be table, csv, json, or yaml (got %q)", format)
	}
	if maxIter == 0 {
		maxIter = cfg.Cluster.MaxIterations
	}

	log := zap.L().With(zap.String("command", "cluster"))

	records, err := ingest.ReadFile(ctx, input, ingest.Options{
		Latin1: latin1 || cfg.Ingest.Latin1,
	})
	if err != nil {
		return err
	}

	log.Info("starting clustering run",
		zap.String("input", input),
		zap.Int("records", len(records)),
		zap.Int("max_iterations", maxIter),
	)

	result := cluster.New(maxIter).Run(records)

	profiles := orderedProfiles(result)
	if limit > 0 && limit < len(profiles) {
		profiles = profiles[:limit]
	}

	if err := outputProfiles(profiles, format, outputPath); err != nil {
		return err
	}

	if save {
		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.Migrate(ctx); err != nil {
			return err
		}

		run := &model.ClusterRun{
			ID:            uuid.NewString(),
			Source:        input,
			Records:       result.Records,
			Countries:     len(result.Countries),
			Iterations:    result.Iterations,
			Converged:     result.Converged,
			StableCluster: result.StableCluster,
			CreatedAt:     time.Now().UTC(),
		}
		if err := st.SaveRun(ctx, run); err != nil {
			return err
		}
		if err := st.SaveProfiles(ctx, run.ID, result.Profiles); err != nil {
			return err
		}
		fmt.Printf("Saved run %s (%d profiles)\n", run.ID, len(result.Profiles))
	}

	printRunSummary(result)
	return nil
}

// orderedProfiles flattens the profile map into first-seen country order.
func orderedProfiles(result cluster.Result) []model.CountryProfile {
	profiles := make([]model.CountryProfile, 0, len(result.Profiles))
	for _, country := range result.Countries {
		if p, ok := result.Profiles[country]; ok {
			profiles = append(profiles, p)
		}
	}
	return profiles
}

func printRunSummary(result cluster.Result) {
	if len(result.Countries) == 0 {
		fmt.Println("No countries clustered.")
		return
	}
	stable := result.Summaries[result.StableCluster]
	volatile := result.Summaries[1-result.StableCluster]

	fmt.Printf("\n--- Summary ---\n")
	fmt.Printf("Records:             %d\n", result.Records)
	fmt.Printf("Countries:           %d\n", len(result.Countries))
	fmt.Printf("Iterations:          %d (converged: %v)\n", result.Iterations, result.Converged)
	fmt.Printf("Stable Urbanizers:   %d (mean score %.2f, mean gini %.2f)\n",
		stable.Size, stable.MeanScore, stable.MeanGini)
	fmt.Printf("Volatile Urbanizers: %d (mean score %.2f, mean gini %.2f)\n",
		volatile.Size, volatile.MeanScore, volatile.MeanGini)
}

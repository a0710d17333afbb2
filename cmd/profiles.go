package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/MuhammadHaseebUlHaqq/dv-dashboard/internal/model"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List or fetch persisted country profiles",
	Long: `Read country profiles from a previously saved clustering run.

Examples:
  # Profiles from the most recent run
  profiles

  # A single country from a specific run
  profiles --run 6b3f... --country Norway

  # Export the latest run as CSV
  profiles --format csv --output profiles.csv`,
	RunE: runProfiles,
}

func init() {
	f := profilesCmd.Flags()
	f.String("run", "", "run ID (default: latest run)")
	f.String("country", "", "fetch a single country")
	f.String("format", "table", "output format: table, csv, json, or yaml")
	f.String("output", "", "output file path (default: stdout)")

	rootCmd.AddCommand(profilesCmd)
}

func runProfiles(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runID, _ := cmd.Flags().GetString("run")
	country, _ := cmd.Flags().GetString("country")
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	if !validFormat(format) {
		return eris.Errorf("profiles: --format must be table, csv, json, or yaml (got %q)", format)
	}

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	if err := st.Migrate(ctx); err != nil {
		return err
	}

	if runID == "" {
		runID, err = st.LatestRunID(ctx)
		if err != nil {
			return eris.Wrap(err, "profiles: no saved runs")
		}
	}

	var profiles []model.CountryProfile
	if country != "" {
		p, err := st.GetProfile(ctx, runID, country)
		if err != nil {
			return eris.Wrapf(err, "profiles: %s in run %s", country, runID)
		}
		profiles = []model.CountryProfile{*p}
	} else {
		profiles, err = st.ListProfiles(ctx, runID)
		if err != nil {
			return err
		}
	}

	if len(profiles) == 0 {
		fmt.Printf("No profiles found for run %s.\n", runID)
		return nil
	}

	return outputProfiles(profiles, format, outputPath)
}

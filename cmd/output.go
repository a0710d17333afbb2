package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/MuhammadHaseebUlHaqq/dv-dashboard/internal/model"
	"github.com/MuhammadHaseebUlHaqq/dv-dashboard/internal/registry"
)

func validFormat(format string) bool {
	switch format {
	case "table", "csv", "json", "yaml":
		return true
	}
	return false
}

// outputProfiles writes profiles in the requested format to outputPath, or
// stdout when the path is empty.
func outputProfiles(profiles []model.CountryProfile, format, outputPath string) error {
	var w io.Writer = os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "output: create %s", outputPath)
		}
		defer f.Close() //nolint:errcheck
		w = f
	}

	switch format {
	case "csv":
		return writeProfileCSV(w, profiles)
	case "json":
		return writeProfileJSON(w, profiles)
	case "yaml":
		return writeProfileYAML(w, profiles)
	case "table":
		return writeProfileTable(w, profiles)
	default:
		return eris.Errorf("output: unsupported format %q", format)
	}
}

func writeProfileJSON(w io.Writer, profiles []model.CountryProfile) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(profiles), "output: encode JSON")
}

func writeProfileYAML(w io.Writer, profiles []model.CountryProfile) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close() //nolint:errcheck
	return eris.Wrap(enc.Encode(profiles), "output: encode YAML")
}

func writeProfileCSV(w io.Writer, profiles []model.CountryProfile) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	keys := registry.ProfileKeys()
	header := append([]string{"country", "cluster", "label", "observations"}, keys...)
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "output: write CSV header")
	}

	for _, p := range profiles {
		row := []string{
			p.Country,
			fmt.Sprintf("%d", p.Cluster),
			string(p.Label),
			fmt.Sprintf("%d", p.Observations),
		}
		for _, key := range keys {
			row = append(row, fmt.Sprintf("%g", p.Indicators[key]))
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "output: write CSV row")
		}
	}
	return nil
}

func writeProfileTable(w io.Writer, profiles []model.CountryProfile) error {
	header := fmt.Sprintf("%-35s %-20s %7s %4s %8s %8s\n",
		"Country", "Label", "Cluster", "Obs", "Score", "Gini")
	if _, err := fmt.Fprint(w, header); err != nil {
		return eris.Wrap(err, "output: write table header")
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", 88)); err != nil {
		return eris.Wrap(err, "output: write table separator")
	}

	for _, p := range profiles {
		name := p.Country
		if len(name) > 35 {
			name = name[:32] + "..."
		}
		line := fmt.Sprintf("%-35s %-20s %7d %4d %8.2f %8.2f\n",
			name, p.Label, p.Cluster, p.Observations,
			p.Indicators[registry.KeyOverallScore], p.Indicators[registry.KeyGiniIndex])
		if _, err := fmt.Fprint(w, line); err != nil {
			return eris.Wrap(err, "output: write table row")
		}
	}
	return nil
}

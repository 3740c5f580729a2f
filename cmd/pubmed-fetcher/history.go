// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-fetcher/internal/store"
	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived runs and inspect their records",
	Long: `History reads the archive database written by runs started with --archive.
Without flags it lists recent runs; --run prints the records of one run,
and --export writes the whole archive to YAML and JSON files next to the
database.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("archive-dir", "archive", "directory holding the archive database")
	historyCmd.Flags().Int("max-results", 20, "maximum number of runs to list")
	historyCmd.Flags().Int64("run", 0, "print the records of this run")
	historyCmd.Flags().Bool("json", false, "output as JSON")
	historyCmd.Flags().Bool("export", false, "export the archive to export.yaml and export.json")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("archive-dir")
	if !cmd.Flags().Changed("archive-dir") && viper.GetString("archive.dir") != "" {
		dir = viper.GetString("archive.dir")
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")
	runID, _ := cmd.Flags().GetInt64("run")
	asJSON, _ := cmd.Flags().GetBool("json")
	export, _ := cmd.Flags().GetBool("export")

	s, err := store.Open(types.ArchiveConfig{Dir: dir, MaxResults: maxResults})
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()

	if export {
		yamlPath, err := s.ExportYAML(ctx)
		if err != nil {
			return err
		}
		jsonPath, err := s.ExportJSON(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Exported archive to %s and %s\n", yamlPath, jsonPath)
		return nil
	}

	if runID > 0 {
		records, err := s.Records(ctx, runID)
		if err != nil {
			return err
		}
		return printRecords(records, asJSON)
	}

	runs, err := s.Runs(ctx, maxResults)
	if err != nil {
		return err
	}
	return printRuns(runs, asJSON)
}

func printRuns(runs []store.Run, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No archived runs.")
		return nil
	}

	fmt.Printf("%-4s  %-20s  %-7s  %s\n", "ID", "Date", "Records", "Query")
	fmt.Println(strings.Repeat("-", 60))
	for _, r := range runs {
		date := ""
		if !r.CreatedAt.IsZero() {
			date = r.CreatedAt.Format(time.RFC3339)
		}
		fmt.Printf("%-4d  %-20s  %-7d  %s\n", r.ID, date, r.RecordCount, r.Query)
	}
	return nil
}

func printRecords(records []types.Record, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("No records in this run.")
		return nil
	}

	for i, r := range records {
		fmt.Printf("\n[%d] %s\n", i+1, r.Title)
		if len(r.Authors) > 0 {
			fmt.Printf("    authors:      %s\n", strings.Join(r.Authors, "; "))
		}
		if len(r.Affiliations) > 0 {
			fmt.Printf("    affiliations: %s\n", strings.Join(r.Affiliations, "; "))
		}
	}
	return nil
}

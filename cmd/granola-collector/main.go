package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"paracollect/internal/collector"
	"paracollect/internal/config"
	"paracollect/internal/ledger"
	"paracollect/internal/logging"
	"paracollect/internal/watermark"
)

var (
	version    = "dev"
	commit     = "none"
	buildDate  = "unknown"
	jsonOutput bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "granola-collector",
		Short: "Incremental Granola meeting ingestion",
		Long: `granola-collector reads the Granola meeting cache and writes one
markdown document per updated meeting into the PARA inbox for
downstream fact extraction. Runs are incremental: a persisted
watermark marks how far previous runs got.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollect()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Run: func(cmd *cobra.Command, args []string) {
			if jsonOutput {
				printJSON(map[string]string{
					"version": version,
					"commit":  commit,
					"date":    buildDate,
				})
			} else {
				fmt.Printf("granola-collector %s (%s, %s)\n", version, commit, buildDate)
			}
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show watermark, inbox, and last-run state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus()
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCollect() error {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	log := logging.New(settings.LogPath())
	result, err := collector.Run(settings, log)
	if err != nil {
		// Already logged with detail; the exit code is the contract here.
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	if jsonOutput {
		printJSON(map[string]interface{}{
			"ok":       true,
			"outcome":  string(result.Outcome),
			"selected": result.Selected,
			"written":  result.Written,
			"skipped":  result.Skipped,
			"duration": result.Duration.String(),
		})
		return nil
	}

	switch result.Outcome {
	case collector.OutcomeSkippedBusy:
		fmt.Println("Another instance is running, skipped")
	default:
		fmt.Printf("✓ Wrote %d inbox file(s) (%d selected, %d skipped) in %s\n",
			result.Written, result.Selected, result.Skipped, result.Duration.Round(time.Millisecond))
	}
	return nil
}

func runStatus() error {
	type Result struct {
		OK         bool   `json:"ok"`
		Watermark  string `json:"watermark,omitempty"`
		InboxDir   string `json:"inbox_dir"`
		InboxFiles int    `json:"inbox_files"`
		LastRun    string `json:"last_run,omitempty"`
		LastResult string `json:"last_result,omitempty"`
	}

	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	result := Result{OK: true, InboxDir: settings.InboxDir()}

	if data, err := os.ReadFile(settings.WatermarkPath()); err == nil {
		result.Watermark = strings.TrimSpace(string(data))
	}

	if entries, err := os.ReadDir(settings.InboxDir()); err == nil {
		for _, e := range entries {
			if !e.IsDir() && filepath.Ext(e.Name()) == ".md" {
				result.InboxFiles++
			}
		}
	}

	if db, err := ledger.Open(settings.LedgerPath()); err == nil {
		defer db.Close()
		if run, err := ledger.LatestRun(db); err == nil && run != nil {
			result.LastRun = run.StartedAt.Format(watermark.Layout)
			result.LastResult = fmt.Sprintf("%s: %d selected, %d written, %d skipped",
				run.Outcome, run.Selected, run.Written, run.Skipped)
		}
	}

	if jsonOutput {
		printJSON(result)
		return nil
	}

	if result.Watermark != "" {
		fmt.Printf("Watermark:   %s\n", result.Watermark)
	} else {
		fmt.Println("Watermark:   (none, first run pending)")
	}
	fmt.Printf("Inbox:       %s (%d file(s))\n", result.InboxDir, result.InboxFiles)
	if result.LastRun != "" {
		fmt.Printf("Last run:    %s\n", result.LastRun)
		fmt.Printf("Last result: %s\n", result.LastResult)
	}
	return nil
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

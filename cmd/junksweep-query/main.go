package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"junksweep/internal/exitcodes"
	"junksweep/internal/history"
)

func main() {
	// Parse command-line flags
	dbPath := flag.String("db", "/var/lib/junksweep/history.db", "Path to run history database")
	runs := flag.Int("runs", 0, "Show N most recent reclaim runs")
	recent := flag.Int("recent", 0, "Show N most recent processed targets")
	largest := flag.Int("largest", 0, "Show N largest processed targets")
	action := flag.String("action", "", "Filter targets by action (DELETE, DRY_RUN, SKIP, FAILED, PURGE)")
	stats := flag.Bool("stats", false, "Show per-action target counts")
	jsonOutput := flag.Bool("json", false, "Output in JSON format")
	flag.Parse()

	db, err := history.NewRunDB(*dbPath)
	if err != nil {
		log.Fatalf("ERROR: Failed to open history database %s: %v", *dbPath, err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("ERROR: Failed to close history database: %v", err)
		}
	}()

	switch {
	case *runs > 0:
		showRuns(db, *runs, *jsonOutput)
	case *recent > 0:
		showRecent(db, *recent, *jsonOutput)
	case *largest > 0:
		showLargest(db, *largest, *jsonOutput)
	case *action != "":
		showByAction(db, *action, *jsonOutput)
	case *stats:
		showStats(db, *jsonOutput)
	default:
		flag.Usage()
		fmt.Println("\nExamples:")
		fmt.Println("  junksweep-query --runs 10             # Show 10 most recent reclaim runs")
		fmt.Println("  junksweep-query --recent 20           # Show 20 most recent targets")
		fmt.Println("  junksweep-query --largest 10          # Show 10 largest targets")
		fmt.Println("  junksweep-query --action FAILED       # Show targets that survived deletion")
		fmt.Println("  junksweep-query --stats               # Show per-action counts")
		os.Exit(exitcodes.InvalidConfig)
	}
}

func showRuns(db *history.RunDB, limit int, jsonOutput bool) {
	records, err := db.RecentRuns(limit)
	if err != nil {
		log.Fatalf("ERROR: Failed to get recent runs: %v", err)
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(records, "", "  ")
		fmt.Println(string(data))
		return
	}

	if len(records) == 0 {
		fmt.Println("No runs found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tStarted\tVolume\tMode\tFound\tRemoved\tNot Removed\tDuration")
	_, _ = fmt.Fprintln(w, "--\t-------\t------\t----\t-----\t-------\t-----------\t--------")
	for _, r := range records {
		mode := "apply"
		if r.DryRun {
			mode = "dry-run"
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%.1fs\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Volume, mode,
			formatBytes(r.FoundBytes), formatBytes(r.RemovedBytes),
			formatBytes(r.NotRemovedBytes), r.DurationSeconds)
	}
	_ = w.Flush()
}

func showRecent(db *history.RunDB, limit int, jsonOutput bool) {
	records, err := db.RecentTargets(limit)
	if err != nil {
		log.Fatalf("ERROR: Failed to get recent targets: %v", err)
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(records, "", "  ")
		fmt.Println(string(data))
		return
	}

	printTargets(records)
}

func showLargest(db *history.RunDB, limit int, jsonOutput bool) {
	records, err := db.LargestTargets(limit)
	if err != nil {
		log.Fatalf("ERROR: Failed to get largest targets: %v", err)
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(records, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Largest %d targets:\n\n", limit)
	printTargets(records)
}

func showByAction(db *history.RunDB, action string, jsonOutput bool) {
	records, err := db.TargetsByAction(action, 100)
	if err != nil {
		log.Fatalf("ERROR: Failed to query by action: %v", err)
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(records, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Targets with action: %s\n\n", action)
	printTargets(records)
}

func showStats(db *history.RunDB, jsonOutput bool) {
	counts, err := db.CountsByAction()
	if err != nil {
		log.Fatalf("ERROR: Failed to get statistics: %v", err)
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(counts, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Println("Targets by action:")
	for action, n := range counts {
		fmt.Printf("  %-10s %d\n", action, n)
	}
}

func printTargets(records []history.TargetRecord) {
	if len(records) == 0 {
		fmt.Println("No records found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tRun\tTimestamp\tAction\tSize\tPath")
	_, _ = fmt.Fprintln(w, "--\t---\t---------\t------\t----\t----")

	for _, t := range records {
		_, _ = fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\n",
			t.ID, t.RunID, t.Timestamp.Format("2006-01-02 15:04:05"),
			t.Action, formatBytes(t.Size), t.Path)
	}
	_ = w.Flush()
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

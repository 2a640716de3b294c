package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/opscart/vm-cost-optimizer/pkg/classifier"
	"github.com/opscart/vm-cost-optimizer/pkg/config"
	"github.com/opscart/vm-cost-optimizer/pkg/datasource"
	"github.com/opscart/vm-cost-optimizer/pkg/enhancer"
	"github.com/opscart/vm-cost-optimizer/pkg/models"
	"github.com/opscart/vm-cost-optimizer/pkg/output"
	"github.com/opscart/vm-cost-optimizer/pkg/recommender"
	"github.com/opscart/vm-cost-optimizer/pkg/reporter"
	"github.com/opscart/vm-cost-optimizer/pkg/storage"
)

var (
	// Scan flags
	provider     string
	region       string
	subscription string
	project      string
	outputFormat string
	saveResults  bool
	useEnhancer  bool
	verbose      bool

	// Global config
	cfg   *config.Config
	store storage.Store

	// History command vars
	historyLimit    int
	historyProvider string
)

func logVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Printf("[DEBUG] "+format+"\n", args...)
	}
}

func main() {
	cfg = config.NewConfig()

	var rootCmd = &cobra.Command{
		Use:   "vm-scan",
		Short: "VM resource utilization and cost scanner",
		Long:  `Scan cloud VMs for utilization problems, estimate monthly cost, and generate right-sizing recommendations.`,
		Run:   runScan,
	}

	rootCmd.Flags().StringVar(&provider, "provider", "", "Cloud provider: aws, azure, gcp, prometheus")
	rootCmd.Flags().StringVar(&region, "region", "", "Cloud region (e.g. us-east-1)")
	rootCmd.Flags().StringVar(&subscription, "subscription", "", "Azure subscription ID")
	rootCmd.Flags().StringVar(&project, "project", "", "GCP project ID")
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "Output format: table, json, csv")
	rootCmd.Flags().BoolVar(&saveResults, "save", false, "Save the report to the database")
	rootCmd.Flags().BoolVar(&useEnhancer, "enhance", true, "Use the AI enhancer when an API key is configured")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List saved reports",
		Run:   runHistory,
	}
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Number of reports to show")
	historyCmd.Flags().StringVar(&historyProvider, "provider", "", "Filter by provider")
	historyCmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "Output format: table, json, csv")

	showCmd := &cobra.Command{
		Use:   "show <report-id>",
		Short: "Display a saved report",
		Args:  cobra.ExactArgs(1),
		Run:   runShow,
	}
	showCmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "Output format: table, json, csv")

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(showCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initStorage() error {
	var err error
	store, err = storage.NewPostgresStore(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	return nil
}

// startScanSpinner shows progress while a collector walks the cloud API
func startScanSpinner(providerName string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[9], 200*time.Millisecond)
	s.Suffix = fmt.Sprintf(" Collecting %s VM snapshots ...", providerName)
	s.Start()
	return s
}

func runScan(cmd *cobra.Command, args []string) {
	applyFlags()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	source, err := datasource.NewSource(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing datasource: %v\n", err)
		os.Exit(1)
	}

	if !source.IsAvailable(ctx) {
		fmt.Fprintf(os.Stderr, "Error: %s datasource is not reachable\n", source.Name())
		os.Exit(1)
	}

	logVerbose("Using provider: %s", cfg.Provider)

	sp := startScanSpinner(source.Name())
	snapshots, err := source.Collect(ctx)
	sp.Stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error collecting snapshots: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("[INFO] Collected %d VM snapshot(s) from %s\n", len(snapshots), source.Name())

	engine := recommender.New(
		classifier.New(cfg.Thresholds),
		reporter.NewWithSavingsRule(cfg.SavingsRate, cfg.SavingsCPUThreshold, cfg.SavingsMemThreshold),
		cfg.EnhancerTimeout,
	)

	var enh enhancer.Enhancer
	if useEnhancer && cfg.GeminiAPIKey != "" {
		enh = enhancer.NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.EnhancerTimeout)
		logVerbose("Enhancer enabled (model: %s)", cfg.GeminiModel)
	} else {
		fmt.Println("[INFO] Enhancer disabled, using baseline recommendations")
	}

	report := engine.Generate(ctx, snapshots, models.Provider(cfg.Provider), enh)

	if saveResults {
		if err := initStorage(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		if err := store.SaveReport(ctx, report); err != nil {
			fmt.Fprintf(os.Stderr, "[WARN] Failed to save report: %v\n", err)
		} else {
			fmt.Printf("[INFO] Saved report %s\n", report.ID)
		}
	}

	handler, err := output.NewHandler(outputFormat, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := handler.DisplayReport(ctx, report); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering report: %v\n", err)
		os.Exit(1)
	}
}

func runHistory(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	if err := initStorage(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	summaries, err := store.ListReports(ctx, historyProvider, historyLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing reports: %v\n", err)
		os.Exit(1)
	}

	if len(summaries) == 0 {
		fmt.Println("[INFO] No saved reports found")
		return
	}

	handler, err := output.NewHandler(outputFormat, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := handler.DisplayHistory(ctx, summaries); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering history: %v\n", err)
		os.Exit(1)
	}
}

func runShow(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	if err := initStorage(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	report, err := store.GetReport(ctx, args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	handler, err := output.NewHandler(outputFormat, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := handler.DisplayReport(ctx, report); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering report: %v\n", err)
		os.Exit(1)
	}
}

// applyFlags overlays command-line flags on the environment config
func applyFlags() {
	if provider != "" {
		cfg.Provider = provider
	}
	if region != "" {
		cfg.Region = region
	}
	if subscription != "" {
		cfg.Subscription = subscription
	}
	if project != "" {
		cfg.Project = project
	}
	cfg.OutputFormat = outputFormat
	cfg.Verbose = verbose
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/fenilsonani/smartcare/internal/config"
	"github.com/fenilsonani/smartcare/internal/orchestrator"
	"github.com/fenilsonani/smartcare/internal/platform"
	"github.com/fenilsonani/smartcare/internal/reporter"
	"github.com/fenilsonani/smartcare/internal/scan"
	"github.com/fenilsonani/smartcare/internal/scanner"
	"github.com/fenilsonani/smartcare/internal/sizer"
	"github.com/fenilsonani/smartcare/internal/ui"
)

var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var (
	configPath string
	outputFmt  string
	plain      bool
	asJSON     bool
	asYAML     bool
	scanRoot   string
	verbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "smartcare",
	Short: "Smart Care disk scan",
	Long: `SmartCare scans your system for reclaimable disk space, performance
issues and application problems, and compiles the findings into a
ranked, deduplicated cleanup plan.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run a full Smart Care scan",
	Long: `Runs the cleanup, performance and applications scan domains and
reports what can be reclaimed without making any changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		platformInfo, err := platform.GetInfo()
		if err != nil {
			return fmt.Errorf("failed to get platform info: %w", err)
		}
		if scanRoot != "" {
			platformInfo.HiddenScanRoot = scanRoot
		}

		if asJSON {
			outputFmt = string(reporter.FormatJSON)
		}
		if asYAML {
			outputFmt = string(reporter.FormatYAML)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		sizes := sizer.New()
		categories := scanner.New(cfg, platformInfo, sizes)
		deps := orchestrator.Deps{
			Categories: categories,
			Junk:       categories,
			Downloads:  categories,
			Hidden:     scanner.NewHiddenSpaceScanner(sizes),
			Apps:       scanner.NewAppIssueScanner(cfg, platformInfo, sizes),
			Login:      scanner.NewLoginItemScanner(platformInfo),
		}

		if plain || outputFmt != string(reporter.FormatSummary) {
			return runPlain(ctx, cfg, platformInfo, deps, sizes)
		}
		return runInteractive(ctx, cfg, platformInfo, deps, sizes)
	},
}

// runPlain runs the scan without the TUI and prints a report
func runPlain(ctx context.Context, cfg *config.Config, platformInfo *platform.Info, deps orchestrator.Deps, sizes *sizer.Resolver) error {
	var onProgress orchestrator.EmitFunc
	if verbose {
		onProgress = func(u scan.ProgressUpdate) {
			fmt.Fprintf(os.Stderr, "[%3.0f%%] %s %s\n", u.Overall*100, u.Title, u.Detail)
		}
	}

	orch := orchestrator.New(cfg, platformInfo, deps, sizes, onProgress)
	result, err := orch.Run(ctx)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	return reporter.New(os.Stdout, reporter.OutputFormat(outputFmt)).Report(result)
}

// runInteractive drives the scan behind the bubbletea view
func runInteractive(ctx context.Context, cfg *config.Config, platformInfo *platform.Info, deps orchestrator.Deps, sizes *sizer.Resolver) error {
	model := ui.NewScanModel()
	program := tea.NewProgram(model)

	orch := orchestrator.New(cfg, platformInfo, deps, sizes, func(u scan.ProgressUpdate) {
		program.Send(ui.ProgressMsg(u))
	})

	go func() {
		result, err := orch.Run(ctx)
		program.Send(ui.ScanCompleteMsg{Result: result, Err: err})
	}()

	finalModel, err := program.Run()
	if err != nil {
		return fmt.Errorf("ui error: %w", err)
	}

	if m, ok := finalModel.(*ui.ScanModel); ok {
		if _, scanErr := m.Result(); scanErr != nil {
			return fmt.Errorf("scan failed: %w", scanErr)
		}
	}
	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write the default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			defaultPath, err := config.DefaultPath()
			if err != nil {
				return err
			}
			path = defaultPath
		}
		if err := config.GetDefault().Save(path); err != nil {
			return err
		}
		fmt.Printf("Wrote default config to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose progress output")

	scanCmd.Flags().StringVarP(&outputFmt, "output", "o", string(reporter.FormatSummary), "output format: summary, table, json, yaml")
	scanCmd.Flags().BoolVar(&plain, "plain", false, "disable the interactive view")
	scanCmd.Flags().BoolVar(&asJSON, "json", false, "shorthand for --plain -o json")
	scanCmd.Flags().BoolVar(&asYAML, "yaml", false, "shorthand for --plain -o yaml")
	scanCmd.Flags().StringVar(&scanRoot, "root", "", "override the hidden-space scan root")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(configCmd)
}

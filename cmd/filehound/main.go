package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/IvanShishkin/filehound/internal/config"
	"github.com/IvanShishkin/filehound/internal/core"
	"github.com/IvanShishkin/filehound/internal/filesystem"
	"github.com/IvanShishkin/filehound/internal/report"
	"github.com/IvanShishkin/filehound/pkg/models"
	"github.com/go-git/go-billy/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorOrange = "\033[38;5;208m"
	colorYellow = "\033[38;5;220m"
	colorGray   = "\033[38;5;245m"
	colorCyan   = "\033[36m"
)

// exitCancelled is the conventional exit status after SIGINT
const exitCancelled = 130

var (
	logger     *zap.Logger
	verbose    bool
	configFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "filehound",
		Short: "Filehound - fast file finder for documents and media",
		Long: `Recursively scan directories for documents, images, videos, audio
and archives, across several roots at once if needed.`,
		Version:       core.Version,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initLogger()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		Run: func(cmd *cobra.Command, args []string) {
			printMainBanner()
			cmd.Help()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a YAML config file")

	// Add commands
	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(quickCmd())
	rootCmd.AddCommand(infoCmd())
	rootCmd.AddCommand(typesCmd())

	// Ctrl-C cancels the running scan
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if code := exitCode(err); code != 0 {
		if code != exitCancelled {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(code)
	}
}

// exitCode maps a command error to the process exit status. A scan the user
// interrupted exits quietly; a scan that hit its timeout is a failure.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, core.ErrScanCancelled) && !errors.Is(err, context.DeadlineExceeded):
		return exitCancelled
	default:
		return 1
	}
}

// initLogger builds the logger based on the verbose flag
func initLogger() error {
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		// Silent logger - only errors
		cfg := zap.Config{
			Level:            zap.NewAtomicLevelAt(zapcore.ErrorLevel),
			Encoding:         "json",
			OutputPaths:      []string{"stderr"},
			ErrorOutputPaths: []string{"stderr"},
			EncoderConfig:    zap.NewProductionEncoderConfig(),
		}
		logger, err = cfg.Build()
	}
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// printMainBanner prints the main banner
func printMainBanner() {
	fmt.Println()
	fmt.Printf("%s%sFILEHOUND%s %sv%s%s\n", colorBold, colorOrange, colorReset, colorGray, core.Version, colorReset)
	fmt.Printf("%sfind documents, photos, videos, music and archives%s\n", colorGray, colorReset)
	fmt.Println()
}

// printBanner prints the startup banner
func printBanner(roots []string, filter models.Category, mode models.ScanMode) {
	printMainBanner()
	for i, root := range roots {
		label := "Scanning:"
		if i > 0 {
			label = "         "
		}
		fmt.Printf("  %s%s%s  %s\n", colorGray, label, colorReset, root)
	}
	fmt.Printf("  %sType:%s      %s\n", colorGray, colorReset, filter)
	fmt.Printf("  %sMode:%s      %s\n", colorGray, colorReset, mode)
	fmt.Println()
}

// scanCmd creates the scan command
func scanCmd() *cobra.Command {
	var (
		fileType       string
		parallel       bool
		workers        int
		exclude        []string
		name           string
		followSymlinks bool
		skipHidden     bool
		maxSize        string
		timeout        time.Duration
		reportFormat   string
		outputFile     string
	)

	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Recursively find files of a given type",
		Long: `Recursively scan one or more directories for files of the selected type.
With no paths the common user directories (downloads, documents, pictures,
videos, music and home) are scanned.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Validate flags before doing anything
			if err := validateFlags(fileType, reportFormat, maxSize); err != nil {
				fmt.Printf("\n  %s✗ Invalid parameter:%s %s\n\n", colorRed, colorReset, err.Error())
				return err
			}

			cfg, err := config.LoadConfig(configFile)
			if err != nil {
				logger.Error("Failed to load config", zap.Error(err))
				return err
			}

			// Override config with CLI flags
			flags := cmd.Flags()
			if flags.Changed("type") {
				cfg.Filter = fileType
			}
			if flags.Changed("workers") {
				cfg.Workers = workers
			}
			if flags.Changed("exclude") {
				cfg.Exclude = exclude
			}
			if flags.Changed("follow-symlinks") {
				cfg.FollowSymlinks = followSymlinks
			}
			if flags.Changed("skip-hidden") {
				cfg.SkipHidden = skipHidden
			}
			if flags.Changed("max-size") {
				cfg.MaxSize = maxSize
			}
			if flags.Changed("timeout") {
				cfg.Timeout = timeout
			}
			if reportFormat != "" {
				cfg.ReportFormat = reportFormat
			}
			if outputFile != "" {
				cfg.OutputFile = outputFile
			}

			filter, err := models.ParseCategory(cfg.Filter)
			if err != nil {
				return err
			}

			fsys := filesystem.NewOSFS()
			roots, err := resolveRoots(fsys, args, cfg.Roots)
			if err != nil {
				return err
			}

			mode := models.ModeSequential
			if parallel {
				mode = models.ModeParallel
			}
			printBanner(roots, filter, mode)

			scanner := core.NewScanner(cfg, fsys, logger)
			req := models.ScanRequest{Roots: roots, Filter: filter}

			var results *models.ScanResults
			if parallel {
				fmt.Printf("  %sScanning %d roots in parallel...%s\n", colorGray, len(roots), colorReset)
				results, err = scanner.ScanParallel(cmd.Context(), req)
			} else {
				found := 0
				req.Progress = models.SinkFunc(func(r *models.FileRecord) {
					found++
					fmt.Fprintf(os.Stderr, "\r  %sFound:%s     %s%d%s", colorGray, colorReset, colorOrange, found, colorReset)
				})
				results, err = scanner.Scan(cmd.Context(), req)
				if found > 0 {
					fmt.Fprintln(os.Stderr)
				}
			}
			if err != nil {
				return scanError(err)
			}

			results.ApplyNameFilter(name)
			return writeReport(cfg, results)
		},
	}

	// Flags
	cmd.Flags().StringVarP(&fileType, "type", "t", "all", "File type: "+strings.Join(categoryNames(), ", "))
	cmd.Flags().BoolVarP(&parallel, "parallel", "p", false, "Scan each root in its own goroutine")
	cmd.Flags().IntVar(&workers, "workers", 0, "Max roots scanned at once with --parallel (default: one per root)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Directory names to exclude (comma-separated)")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Only keep files whose name contains this text (case-insensitive)")
	cmd.Flags().BoolVar(&followSymlinks, "follow-symlinks", false, "Descend into symlinked directories")
	cmd.Flags().BoolVar(&skipHidden, "skip-hidden", false, "Skip dot-prefixed files and directories")
	cmd.Flags().StringVar(&maxSize, "max-size", "", "Skip files larger than this, e.g. 650K, 10M, 1G")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Abandon the scan after this long, e.g. 30s (default: no limit)")
	cmd.Flags().StringVarP(&reportFormat, "report", "r", "", "Report format: text, json, yaml, md (default: console output)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path")

	return cmd
}

// quickCmd creates the quick scan command
func quickCmd() *cobra.Command {
	var (
		name         string
		reportFormat string
		outputFile   string
	)

	cmd := &cobra.Command{
		Use:   "quick <dir>",
		Short: "List a directory, newest first",
		Long:  `List the files and folders directly inside a directory, most recently modified first.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFlags("", reportFormat, ""); err != nil {
				fmt.Printf("\n  %s✗ Invalid parameter:%s %s\n\n", colorRed, colorReset, err.Error())
				return err
			}

			cfg, err := config.LoadConfig(configFile)
			if err != nil {
				logger.Error("Failed to load config", zap.Error(err))
				return err
			}
			if reportFormat != "" {
				cfg.ReportFormat = reportFormat
			}
			if outputFile != "" {
				cfg.OutputFile = outputFile
			}

			scanner := core.NewScanner(cfg, filesystem.NewOSFS(), logger)
			results, err := scanner.QuickScan(cmd.Context(), args[0])
			if err != nil {
				return scanError(err)
			}

			results.ApplyNameFilter(name)
			return writeReport(cfg, results)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Only keep entries whose name contains this text (case-insensitive)")
	cmd.Flags().StringVarP(&reportFormat, "report", "r", "", "Report format: text, json, yaml, md (default: console output)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path")

	return cmd
}

// infoCmd creates the file details command
func infoCmd() *cobra.Command {
	var checksum bool

	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Show details of a single file",
		Long:  `Display name, location, size, type, MIME type and modification time of a file.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("invalid path: %w", err)
			}

			fsys := filesystem.NewOSFS()
			linkInfo, err := fsys.Lstat(path)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("file not found: %s", args[0])
				}
				return fmt.Errorf("failed to stat file: %w", err)
			}

			info := linkInfo
			isSymlink := linkInfo.Mode()&os.ModeSymlink != 0
			if isSymlink {
				if target, err := fsys.Stat(path); err == nil {
					info = target
				}
			}
			record := filesystem.NewFileRecord(path, info, isSymlink)

			fmt.Println()
			fmt.Printf("  %s%s%s\n\n", colorBold, record.Name, colorReset)
			fmt.Printf("  %sLocation:%s  %s\n", colorGray, colorReset, record.Path)
			fmt.Printf("  %sSize:%s      %s\n", colorGray, colorReset, record.FormattedSize())
			fmt.Printf("  %sType:%s      %s\n", colorGray, colorReset, record.Category())
			if !record.IsDir {
				mime, err := filesystem.DetectMIME(fsys, path)
				if err != nil {
					logger.Warn("MIME detection failed", zap.String("path", path), zap.Error(err))
					mime = "unknown"
				}
				fmt.Printf("  %sMIME:%s      %s\n", colorGray, colorReset, mime)
			}
			fmt.Printf("  %sModified:%s  %s\n", colorGray, colorReset, record.FormattedDate())
			if record.IsSymlink {
				fmt.Printf("  %sSymlink:%s   yes\n", colorGray, colorReset)
			}
			if record.IsHidden {
				fmt.Printf("  %sHidden:%s    yes\n", colorGray, colorReset)
			}
			if checksum && !record.IsDir {
				sum, err := filesystem.Checksum(fsys, path)
				if err != nil {
					return err
				}
				fmt.Printf("  %sCRC32:%s     %s\n", colorGray, colorReset, sum)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().BoolVar(&checksum, "checksum", false, "Also compute the CRC32 checksum of the file")

	return cmd
}

// typesCmd creates the file types command
func typesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List file types and their extensions",
		Long:  `Display the file types accepted by --type and the extensions each one matches.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("FILE TYPES:")
			for _, c := range models.Categories() {
				exts := c.Extensions()
				desc := "every file"
				if len(exts) > 0 {
					desc = strings.Join(exts, ", ")
				}
				fmt.Printf("  %s%-10s%s %s\n", colorCyan, c, colorReset, desc)
			}
			fmt.Println("")
			fmt.Println("EXAMPLES:")
			fmt.Println("  filehound scan --type image ~/Pictures ~/DCIM     # Photos from two folders")
			fmt.Println("  filehound scan -p --type video /media /mnt/usb     # Scan roots in parallel")
			fmt.Println("  filehound scan --type document --name invoice      # Search common folders")
			fmt.Println("  filehound quick ~/Downloads                        # Newest downloads first")
		},
	}
}

// resolveRoots picks the scan roots: CLI args first, then configured roots,
// then the common user directories.
func resolveRoots(fsys billy.Filesystem, args, configured []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if len(configured) > 0 {
		return configured, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("no paths given and home directory is unknown: %w", err)
	}
	roots := filesystem.CommonDirectories(fsys, home)
	if len(roots) == 0 {
		return nil, fmt.Errorf("no paths given and no common directories found under %s", home)
	}
	return roots, nil
}

// scanError logs a failed or cancelled scan and returns err for the exit code
func scanError(err error) error {
	switch core.Outcome(err) {
	case models.StateCancelled:
		if errors.Is(err, context.DeadlineExceeded) {
			fmt.Fprintf(os.Stderr, "\n  %s⚠ Scan timed out%s\n\n", colorYellow, colorReset)
		}
	default:
		logger.Error("Scan failed", zap.Error(err))
	}
	return err
}

// writeReport renders results and prints where the report went
func writeReport(cfg *config.Config, results *models.ScanResults) error {
	generator := report.NewGenerator(cfg, logger)
	path, err := generator.Generate(results)
	if err != nil {
		logger.Error("Failed to generate report", zap.Error(err))
		return err
	}

	if path != "" {
		results.ReportPath = path
		fmt.Printf("  %sFound:%s     %d\n", colorGray, colorReset, len(results.Files))
		fmt.Printf("  %sReport:%s    %s%s%s\n", colorGray, colorReset, colorOrange, path, colorReset)
		fmt.Println()
	}
	return nil
}

// validateFlags validates CLI flag values
func validateFlags(fileType, reportFormat, maxSize string) error {
	if fileType != "" {
		if _, err := models.ParseCategory(fileType); err != nil {
			return fmt.Errorf("--type must be one of: %s (got: %s)", strings.Join(categoryNames(), ", "), fileType)
		}
	}

	if reportFormat != "" {
		if !contains(report.Formats, strings.ToLower(reportFormat)) {
			return fmt.Errorf("--report must be one of: %s (got: %s)", strings.Join(report.Formats, ", "), reportFormat)
		}
	}

	if _, err := filesystem.ParseSize(maxSize); err != nil {
		return fmt.Errorf("--max-size: %w", err)
	}

	return nil
}

func categoryNames() []string {
	categories := models.Categories()
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.String())
	}
	return names
}

// contains checks if a slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

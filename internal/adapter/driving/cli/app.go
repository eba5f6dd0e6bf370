package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/diillson/cwlogs-retention-go/internal/application/usecase"
	"github.com/diillson/cwlogs-retention-go/internal/shared/types"
	"github.com/diillson/cwlogs-retention-go/pkg/console"
	"github.com/diillson/cwlogs-retention-go/pkg/logger"
	"github.com/diillson/cwlogs-retention-go/pkg/version"
)

// UseCaseBuilder monta o use case depois que o logger foi configurado pelas flags.
type UseCaseBuilder func(log *zap.Logger) *usecase.RetentionUseCase

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd      *cobra.Command
	buildUseCase UseCaseBuilder
	version      string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:   "cwlogs-retention",
		Short: "Apply a uniform retention policy to CloudWatch Logs log groups",
		Long: `Lists every CloudWatch Logs log group in the selected region(s) and sets
the same retention period on each of them, one at a time. Log groups that already
keep data for the same or a shorter period are left untouched unless
--skip-shorter-periods=false is given.`,
		Version:       formattedVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "cwlogs-retention version: %s\n" .Version}}`)

	flags := rootCmd.Flags()
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.IntP("retention-days", "r", types.DefaultRetentionDays, "Retention period in days to apply to every log group")
	flags.Int("max-pages", types.DefaultMaxPages, "Maximum number of DescribeLogGroups pages to read per region")
	flags.Int("page-size", types.DefaultPageSize, "Log groups requested per page (1-50)")
	flags.Bool("skip-shorter-periods", true, "Leave log groups that already have the same or a shorter retention untouched")
	flags.StringP("profile", "p", "", "AWS profile to use (default: SDK default credential chain)")
	flags.StringSlice("regions", nil, "AWS regions to process (comma-separated)")
	flags.BoolP("all-regions", "a", false, "Process every region enabled for the account")
	flags.String("prefix", "", "Only process log groups whose name starts with this prefix")
	flags.StringSliceP("exclude", "e", nil, "Skip log groups whose name contains any of these substrings")
	flags.Bool("dry-run", false, "Show what would change without calling PutRetentionPolicy")
	flags.Bool("fail-on-error", false, "Exit with an error when any log group could not be updated")
	flags.StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	flags.StringSliceP("report-type", "y", []string{"csv"}, "Specify report types: csv, json, pdf")
	flags.StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	flags.String("report-bucket", "", "S3 bucket to upload exported reports to")
	flags.String("log-level", "warn", "Diagnostic log level: debug, info, warn, error")
	flags.String("log-format", "console", "Diagnostic log format: console or json")
	flags.Bool("no-color", false, "Disable colored output")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// SetUseCaseBuilder sets the function that wires the retention use case.
func (app *CLIApp) SetUseCaseBuilder(builder UseCaseBuilder) {
	app.buildUseCase = builder
}

// parseArgs mescla defaults, arquivo de configuração e flags, nesta ordem de precedência crescente.
func parseArgs(flags *pflag.FlagSet, fileCfg *types.Config) (*types.CLIArgs, error) {
	args := &types.CLIArgs{
		RetentionDays:      types.DefaultRetentionDays,
		MaxPages:           types.DefaultMaxPages,
		PageSize:           types.DefaultPageSize,
		SkipShorterPeriods: true,
	}
	args.ConfigFile, _ = flags.GetString("config-file")
	args.ReportType, _ = flags.GetStringSlice("report-type")
	args.LogLevel, _ = flags.GetString("log-level")
	args.LogFormat, _ = flags.GetString("log-format")

	if fileCfg != nil {
		applyConfigFile(args, fileCfg)
	}

	if flags.Changed("retention-days") {
		args.RetentionDays, _ = flags.GetInt("retention-days")
	}
	if flags.Changed("max-pages") {
		args.MaxPages, _ = flags.GetInt("max-pages")
	}
	if flags.Changed("page-size") {
		args.PageSize, _ = flags.GetInt("page-size")
	}
	if flags.Changed("skip-shorter-periods") {
		args.SkipShorterPeriods, _ = flags.GetBool("skip-shorter-periods")
	}
	if flags.Changed("profile") {
		args.Profile, _ = flags.GetString("profile")
	}
	// Uma flag de região substitui a escolha oposta vinda do arquivo.
	regionsChanged, allChanged := flags.Changed("regions"), flags.Changed("all-regions")
	if regionsChanged {
		args.Regions, _ = flags.GetStringSlice("regions")
		if !allChanged {
			args.AllRegions = false
		}
	}
	if allChanged {
		args.AllRegions, _ = flags.GetBool("all-regions")
		if args.AllRegions && !regionsChanged {
			args.Regions = nil
		}
	}
	if flags.Changed("prefix") {
		args.LogGroupPrefix, _ = flags.GetString("prefix")
	}
	if flags.Changed("exclude") {
		args.Exclude, _ = flags.GetStringSlice("exclude")
	}
	if flags.Changed("dry-run") {
		args.DryRun, _ = flags.GetBool("dry-run")
	}
	if flags.Changed("fail-on-error") {
		args.FailOnError, _ = flags.GetBool("fail-on-error")
	}
	if flags.Changed("report-name") {
		args.ReportName, _ = flags.GetString("report-name")
	}
	if flags.Changed("report-type") {
		args.ReportType, _ = flags.GetStringSlice("report-type")
	}
	if flags.Changed("dir") {
		args.Dir, _ = flags.GetString("dir")
	}
	if flags.Changed("report-bucket") {
		args.ReportBucket, _ = flags.GetString("report-bucket")
	}

	if args.AllRegions && len(args.Regions) > 0 {
		return nil, fmt.Errorf("%w: --regions and --all-regions are mutually exclusive", types.ErrInvalidConfig)
	}

	// Set default directory to current working directory if not specified
	if args.Dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		args.Dir = cwd
	} else {
		absDir, err := filepath.Abs(args.Dir)
		if err != nil {
			return nil, err
		}
		args.Dir = absDir
	}

	return args, nil
}

func applyConfigFile(args *types.CLIArgs, cfg *types.Config) {
	if cfg.RetentionDays != nil {
		args.RetentionDays = *cfg.RetentionDays
	}
	if cfg.MaxPages != nil {
		args.MaxPages = *cfg.MaxPages
	}
	if cfg.PageSize != nil {
		args.PageSize = *cfg.PageSize
	}
	if cfg.SkipShorterPeriods != nil {
		args.SkipShorterPeriods = *cfg.SkipShorterPeriods
	}
	args.Profile = cfg.Profile
	args.Regions = cfg.Regions
	args.AllRegions = cfg.AllRegions
	args.LogGroupPrefix = cfg.LogGroupPrefix
	args.Exclude = cfg.Exclude
	args.DryRun = cfg.DryRun
	args.FailOnError = cfg.FailOnError
	args.ReportName = cfg.ReportName
	if len(cfg.ReportType) > 0 {
		args.ReportType = cfg.ReportType
	}
	args.Dir = cfg.Dir
	args.ReportBucket = cfg.ReportBucket
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	if noColor, _ := flags.GetBool("no-color"); noColor {
		console.DisableColor()
	}

	displayWelcomeBanner()

	// Verifica a versão mais recente em paralelo; o aviso sai no fim da execução.
	latest := make(chan string, 1)
	go func() {
		defer close(latest)
		if v, ok := version.LatestRelease(app.version); ok {
			latest <- v
		}
	}()

	logLevel, _ := flags.GetString("log-level")
	logFormat, _ := flags.GetString("log-format")
	log, err := logger.New(logLevel, logFormat)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	uc := app.buildUseCase(log)

	var fileCfg *types.Config
	if path, _ := flags.GetString("config-file"); path != "" {
		fileCfg, err = uc.LoadConfig(path)
		if err != nil {
			return err
		}
	}

	cliArgs, err := parseArgs(flags, fileCfg)
	if err != nil {
		return err
	}
	log.Debug("resolved arguments",
		zap.Int("retention_days", cliArgs.RetentionDays),
		zap.Int("max_pages", cliArgs.MaxPages),
		zap.Bool("skip_shorter_periods", cliArgs.SkipShorterPeriods),
		zap.Strings("regions", cliArgs.Regions),
		zap.Bool("dry_run", cliArgs.DryRun),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := uc.RunRetention(ctx, cliArgs)

	select {
	case v, ok := <-latest:
		if ok {
			version.PrintUpdateNotice(v)
		}
	default:
	}

	return runErr
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/diillson/cwlogs-retention-go/internal/domain/entity"
	"github.com/diillson/cwlogs-retention-go/internal/domain/repository"
	"github.com/diillson/cwlogs-retention-go/internal/shared/types"
)

// RetentionUseCase handles enumeration and retention enforcement of log groups.
type RetentionUseCase struct {
	awsRepo    repository.AWSRepository
	exportRepo repository.ExportRepository
	configRepo repository.ConfigRepository
	console    types.ConsoleInterface
	logger     *zap.Logger
}

// NewRetentionUseCase creates a new retention use case.
func NewRetentionUseCase(
	awsRepo repository.AWSRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
	logger *zap.Logger,
) *RetentionUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RetentionUseCase{
		awsRepo:    awsRepo,
		exportRepo: exportRepo,
		configRepo: configRepo,
		console:    console,
		logger:     logger,
	}
}

// LoadConfig carrega o arquivo de configuração informado via --config-file.
func (uc *RetentionUseCase) LoadConfig(path string) (*types.Config, error) {
	return uc.configRepo.LoadConfigFile(path)
}

// RunRetention valida a configuração, resolve as regiões e executa o núcleo
// (enumeração seguida de aplicação) uma região por vez.
func (uc *RetentionUseCase) RunRetention(ctx context.Context, args *types.CLIArgs) error {
	settings, err := types.NewSettings(args)
	if err != nil {
		return err
	}

	regions, err := uc.resolveRegions(ctx, args)
	if err != nil {
		return err
	}

	accountID, err := uc.awsRepo.GetAccountID(ctx, args.Profile)
	if err != nil {
		uc.console.LogWarning("Could not resolve account ID: %s", err)
		accountID = "unknown"
	}

	if settings.DryRun {
		uc.console.LogWarning("Dry run: no retention policy will be changed")
	}
	uc.console.LogInfo("Setting log retention to %d days in %d region(s)", settings.RetentionDays, len(regions))

	reports := make([]entity.RunReport, 0, len(regions))
	for _, region := range regions {
		reports = append(reports, uc.RunRegion(ctx, args.Profile, region, accountID, settings))
	}

	uc.console.Print(uc.buildSummaryTable(reports).Render())
	uc.exportReports(ctx, args, reports)

	return runError(reports, args.FailOnError)
}

// RunRegion executes one enumerate-then-apply pass against a single region.
// An enumeration failure aborts the region before any mutation.
func (uc *RetentionUseCase) RunRegion(ctx context.Context, profile, region, accountID string, settings types.Settings) entity.RunReport {
	report := entity.RunReport{
		Profile:       profile,
		AccountID:     accountID,
		Region:        region,
		RetentionDays: settings.RetentionDays,
		DryRun:        settings.DryRun,
		StartedAt:     time.Now(),
	}
	log := uc.logger.With(zap.String("profile", profile), zap.String("region", region))

	fetch := func(ctx context.Context, limit int32, nextToken *string) (entity.LogGroupPage, error) {
		return uc.awsRepo.DescribeLogGroupsPage(ctx, profile, region, repository.LogGroupPageRequest{
			Limit:     limit,
			NextToken: nextToken,
			Prefix:    settings.LogGroupPrefix,
		})
	}

	status := uc.console.Status(fmt.Sprintf("Listing log groups in %s...", region))
	result, err := EnumerateLogGroups(ctx, fetch, settings)
	status.Stop()

	if err != nil {
		report.Error = err.Error()
		report.FinishedAt = time.Now()
		log.Error("enumeration failed", zap.Error(err))
		uc.console.LogError("[%s] Enumeration failed, no retention changes were made: %s", region, err)
		return report
	}

	report.Discovered = len(result.LogGroups)
	report.Pages = result.Pages
	report.Truncated = result.Truncated
	uc.console.LogInfo("[%s] Found %d log groups", region, report.Discovered)
	if result.Truncated {
		uc.console.LogWarning("[%s] Stopped listing after %d pages (max pages reached); remaining log groups were not processed", region, result.Pages)
	}

	set := func(ctx context.Context, name string, days int) error {
		return uc.awsRepo.PutRetentionPolicy(ctx, profile, region, name, days)
	}
	report.Outcomes = ApplyRetention(ctx, result.LogGroups, settings, set, func(i int, o entity.OperationOutcome) {
		uc.reportOutcome(region, i, o)
	})
	report.FinishedAt = time.Now()

	log.Info("retention run finished",
		zap.Int("discovered", report.Discovered),
		zap.Int("applied", report.Applied()),
		zap.Int("skipped", report.Skipped()),
		zap.Int("failed", report.Failed()),
		zap.Duration("elapsed", report.FinishedAt.Sub(report.StartedAt)),
	)
	return report
}

func (uc *RetentionUseCase) reportOutcome(region string, index int, o entity.OperationOutcome) {
	msg := fmt.Sprintf("[%s] setting %d: %s - %s", region, index+1, o.GroupName, o.Describe())
	switch o.Status {
	case entity.OutcomeApplied:
		uc.console.LogSuccess("%s", msg)
	case entity.OutcomeFailed:
		uc.console.LogError("%s", msg)
	default:
		uc.console.LogInfo("%s", msg)
	}
}

func (uc *RetentionUseCase) resolveRegions(ctx context.Context, args *types.CLIArgs) ([]string, error) {
	if args.AllRegions {
		regions, err := uc.awsRepo.GetAccessibleRegions(ctx, args.Profile)
		if err != nil {
			return nil, fmt.Errorf("listing accessible regions: %w", err)
		}
		if len(regions) == 0 {
			return nil, types.ErrNoRegionsResolved
		}
		return regions, nil
	}

	if len(args.Regions) > 0 {
		return args.Regions, nil
	}

	region, err := uc.awsRepo.GetDefaultRegion(ctx, args.Profile)
	if err != nil {
		return nil, err
	}
	if region == "" {
		uc.console.LogWarning("No region configured for the profile, falling back to %s", types.DefaultRegion)
		region = types.DefaultRegion
	}
	return []string{region}, nil
}

func (uc *RetentionUseCase) buildSummaryTable(reports []entity.RunReport) types.TableInterface {
	table := uc.console.CreateTable()
	table.AddColumn("Region")
	table.AddColumn("Account ID")
	table.AddColumn("Discovered")
	table.AddColumn("Applied")
	table.AddColumn("Skipped")
	table.AddColumn("Failed")
	table.AddColumn("Status")

	for _, r := range reports {
		status := "ok"
		switch {
		case r.Aborted():
			status = "enumeration failed"
		case r.Failed() > 0:
			status = "completed with failures"
		case r.Truncated:
			status = "truncated"
		}
		table.AddRow(r.Region, r.AccountID, r.Discovered, r.Applied(), r.Skipped(), r.Failed(), status)
	}
	return table
}

func (uc *RetentionUseCase) exportReports(ctx context.Context, args *types.CLIArgs, reports []entity.RunReport) {
	if args.ReportName == "" || len(args.ReportType) == 0 {
		return
	}

	for _, reportType := range args.ReportType {
		var (
			path string
			err  error
		)
		switch reportType {
		case "csv":
			path, err = uc.exportRepo.ExportRunReportToCSV(reports, args.ReportName, args.Dir)
		case "json":
			path, err = uc.exportRepo.ExportRunReportToJSON(reports, args.ReportName, args.Dir)
		case "pdf":
			path, err = uc.exportRepo.ExportRunReportToPDF(reports, args.ReportName, args.Dir)
		default:
			uc.console.LogWarning("Unsupported report type: %s", reportType)
			continue
		}
		if err != nil {
			uc.console.LogError("Failed to export run report to %s: %s", reportType, err)
			continue
		}
		uc.console.LogSuccess("Successfully exported run report to %s: %s", reportType, path)

		if args.ReportBucket != "" {
			key := filepath.Base(path)
			if err := uc.awsRepo.UploadReport(ctx, args.Profile, args.ReportBucket, key, path); err != nil {
				uc.console.LogError("Failed to upload %s to s3://%s: %s", key, args.ReportBucket, err)
			} else {
				uc.console.LogSuccess("Uploaded report to s3://%s/%s", args.ReportBucket, key)
			}
		}
	}
}

// runError decide o resultado final: falha de enumeração é sempre erro;
// falhas por item só contam com --fail-on-error.
func runError(reports []entity.RunReport, failOnError bool) error {
	var errs []error
	failedItems := 0
	for _, r := range reports {
		if r.Aborted() {
			errs = append(errs, fmt.Errorf("region %s: %s", r.Region, r.Error))
		}
		failedItems += r.Failed()
	}
	if failOnError && failedItems > 0 {
		errs = append(errs, fmt.Errorf("%d log group(s) could not be updated", failedItems))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", types.ErrRunFailed, errors.Join(errs...))
}

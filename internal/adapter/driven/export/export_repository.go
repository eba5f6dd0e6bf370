package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/diillson/cwlogs-retention-go/internal/domain/entity"
	"github.com/diillson/cwlogs-retention-go/internal/domain/repository"
	"github.com/jung-kurt/gofpdf"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct {
	now func() time.Time
}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{now: time.Now}
}

func (r *ExportRepositoryImpl) ExportRunReportToCSV(reports []entity.RunReport, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	f, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating run report CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	headers := []string{
		"Profile", "Account ID", "Region", "Log Group", "Previous Retention", "Status", "Retention Days", "Detail",
	}
	if err := w.Write(headers); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, rep := range reports {
		if rep.Aborted() {
			record := []string{rep.Profile, rep.AccountID, rep.Region, "", "", "enumeration failed", "", rep.Error}
			if err := w.Write(record); err != nil {
				return "", fmt.Errorf("error writing CSV record: %w", err)
			}
			continue
		}
		for _, o := range rep.Outcomes {
			retention := ""
			if o.Status == entity.OutcomeApplied {
				retention = fmt.Sprintf("%d", o.RetentionDays)
			}
			record := []string{
				rep.Profile,
				rep.AccountID,
				rep.Region,
				o.GroupName,
				previousRetention(o),
				string(o.Status),
				retention,
				outcomeDetail(o),
			}
			if err := w.Write(record); err != nil {
				return "", fmt.Errorf("error writing CSV record: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("error flushing CSV file: %w", err)
	}
	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportRunReportToJSON(reports []entity.RunReport, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	f, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating run report JSON file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(reports); err != nil {
		return "", fmt.Errorf("error encoding run report JSON: %w", err)
	}
	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportRunReportToPDF(reports []entity.RunReport, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{51, 51, 51}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	for i, rep := range reports {
		pdf.AddPage()

		drawSection := func(title string, content string) {
			if strings.TrimSpace(content) == "" {
				return
			}
			pdf.SetFont("Arial", "B", 12)
			pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
			pdf.Cell(0, 8, tr(title))
			pdf.Ln(7)
			pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
			pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
			pdf.Ln(4)
			pdf.SetFont("Arial", "", 10)
			pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
			pdf.MultiCell(190, 5, tr(content), "", "L", false)
			pdf.Ln(8)
		}

		// Header
		pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
		pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 12, tr("  CloudWatch Logs Retention Run"), "", 1, "L", true, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.SetFillColor(240, 240, 240)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Profile: %s", displayProfile(rep.Profile))), "", 1, "L", true, 0, "")
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Account ID: %s | Region: %s", rep.AccountID, rep.Region)), "", 1, "L", true, 0, "")
		pdf.Ln(6)

		// Summary
		var summary strings.Builder
		fmt.Fprintf(&summary, "Target retention: %d days\n", rep.RetentionDays)
		if rep.DryRun {
			summary.WriteString("Mode: dry run\n")
		}
		if rep.Aborted() {
			fmt.Fprintf(&summary, "Enumeration failed, no changes were made: %s\n", rep.Error)
		} else {
			fmt.Fprintf(&summary, "Discovered: %d (%d pages)\n", rep.Discovered, rep.Pages)
			fmt.Fprintf(&summary, "Applied: %d\nSkipped: %d\nFailed: %d\n", rep.Applied(), rep.Skipped(), rep.Failed())
			if rep.Truncated {
				summary.WriteString("Listing stopped at the max pages limit; remaining log groups were not processed.\n")
			}
		}
		drawSection("Summary", summary.String())

		if failed := filterOutcomes(rep.Outcomes, entity.OutcomeFailed); len(failed) > 0 {
			drawSection("Failed Log Groups", formatOutcomeLines(failed, 50))
		}
		if applied := filterOutcomes(rep.Outcomes, entity.OutcomeApplied); len(applied) > 0 {
			drawSection("Updated Log Groups", formatOutcomeLines(applied, 50))
		}

		// Footer
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("CloudWatch Logs Retention | %s", r.now().Format("2006-01-02"))), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Page %d", i+1)), "", 0, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing run report PDF file: %w", err)
	}
	return filepath.Abs(outputFilename)
}

// --- Funções Auxiliares ---

// generateFilename cria um nome de arquivo único com timestamp e garante que o diretório exista.
func (r *ExportRepositoryImpl) generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := r.now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

func previousRetention(o entity.OperationOutcome) string {
	if o.PreviousRetentionDays == nil {
		return "Never expire"
	}
	return fmt.Sprintf("%d", *o.PreviousRetentionDays)
}

func outcomeDetail(o entity.OperationOutcome) string {
	switch o.Status {
	case entity.OutcomeSkipped:
		return o.Reason
	case entity.OutcomeFailed:
		return o.Error
	}
	return ""
}

func displayProfile(profile string) string {
	if profile == "" {
		return "default"
	}
	return profile
}

func filterOutcomes(outcomes []entity.OperationOutcome, status entity.OutcomeStatus) []entity.OperationOutcome {
	var out []entity.OperationOutcome
	for _, o := range outcomes {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

func formatOutcomeLines(outcomes []entity.OperationOutcome, limit int) string {
	var b strings.Builder
	n := len(outcomes)
	if n > limit {
		n = limit
	}
	for _, o := range outcomes[:n] {
		line := fmt.Sprintf("%s | previous: %s", o.GroupName, previousRetention(o))
		if detail := outcomeDetail(o); detail != "" {
			line += " | " + detail
		}
		b.WriteString(line + "\n")
	}
	if len(outcomes) > limit {
		b.WriteString(fmt.Sprintf("... (+%d more)\n", len(outcomes)-limit))
	}
	return b.String()
}

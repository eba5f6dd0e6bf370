package repository

import (
	"github.com/diillson/cwlogs-retention-go/internal/domain/entity"
)

type ExportRepository interface {
	ExportRunReportToCSV(reports []entity.RunReport, filename, outputDir string) (string, error)
	ExportRunReportToJSON(reports []entity.RunReport, filename, outputDir string) (string, error)
	ExportRunReportToPDF(reports []entity.RunReport, filename, outputDir string) (string, error)
}

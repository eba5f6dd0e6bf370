package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/cwlogs-retention-go/internal/domain/entity"
)

func int32Ptr(v int32) *int32 { return &v }

func fixedRepo() *ExportRepositoryImpl {
	return &ExportRepositoryImpl{now: func() time.Time {
		return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	}}
}

func sampleReports() []entity.RunReport {
	short := entity.LogGroup{Name: "/aws/lambda/short", RetentionInDays: int32Ptr(7)}
	long := entity.LogGroup{Name: "/aws/lambda/long", RetentionInDays: int32Ptr(365)}
	never := entity.LogGroup{Name: "/ecs/never"}

	return []entity.RunReport{
		{
			Profile:       "dev",
			AccountID:     "123456789012",
			Region:        "us-east-1",
			RetentionDays: 30,
			Discovered:    3,
			Pages:         1,
			Outcomes: []entity.OperationOutcome{
				entity.Skipped(short, "same or lower retention period already set"),
				entity.Applied(long, 30),
				entity.Failed(never, errors.New("throttled")),
			},
		},
		{
			Profile:   "dev",
			AccountID: "123456789012",
			Region:    "eu-west-1",
			Error:     "listing log groups (page 1): boom",
		},
	}
}

func TestExportRunReportToCSV(t *testing.T) {
	dir := t.TempDir()

	path, err := fixedRepo().ExportRunReportToCSV(sampleReports(), "retention", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "retention_20260102_030405.csv"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)

	assert.Equal(t, "Log Group", records[0][3])
	assert.Equal(t, []string{"dev", "123456789012", "us-east-1", "/aws/lambda/short", "7", "skipped", "", "same or lower retention period already set"}, records[1])
	assert.Equal(t, []string{"dev", "123456789012", "us-east-1", "/aws/lambda/long", "365", "applied", "30", ""}, records[2])
	assert.Equal(t, []string{"dev", "123456789012", "us-east-1", "/ecs/never", "Never expire", "failed", "", "throttled"}, records[3])
	assert.Equal(t, "enumeration failed", records[4][5])
	assert.Equal(t, "eu-west-1", records[4][2])
}

func TestExportRunReportToJSON(t *testing.T) {
	path, err := fixedRepo().ExportRunReportToJSON(sampleReports(), "retention", t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)

	outcomes := decoded[0]["outcomes"].([]interface{})
	require.Len(t, outcomes, 3)
	failed := outcomes[2].(map[string]interface{})
	assert.Equal(t, "failed", failed["status"])
	assert.Equal(t, "throttled", failed["error"])
	assert.Equal(t, "listing log groups (page 1): boom", decoded[1]["error"])
}

func TestExportRunReportToPDF(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")

	path, err := fixedRepo().ExportRunReportToPDF(sampleReports(), "retention", dir)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
	assert.Equal(t, ".pdf", filepath.Ext(path))
}

func TestFormatOutcomeLines_Limit(t *testing.T) {
	var outcomes []entity.OperationOutcome
	for i := 0; i < 3; i++ {
		outcomes = append(outcomes, entity.Applied(entity.LogGroup{Name: "g"}, 30))
	}

	out := formatOutcomeLines(outcomes, 2)
	assert.Contains(t, out, "... (+1 more)")
	assert.Contains(t, out, "g | previous: Never expire")
}

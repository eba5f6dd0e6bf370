package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperationOutcome_Describe(t *testing.T) {
	days := int32(7)
	group := LogGroup{Name: "/g", RetentionInDays: &days}

	assert.Equal(t, "retention set to 30 days", Applied(group, 30).Describe())
	assert.Equal(t, "retention set to 1 day", Applied(group, 1).Describe())
	assert.Equal(t, "skipping - already short", Skipped(group, "already short").Describe())
	assert.Equal(t, "failed - boom", Failed(group, errors.New("boom")).Describe())

	applied := Applied(group, 30)
	assert.Equal(t, &days, applied.PreviousRetentionDays)
}

func TestRunReport_Counts(t *testing.T) {
	g := LogGroup{Name: "/g"}
	r := RunReport{Outcomes: []OperationOutcome{
		Applied(g, 30), Applied(g, 30), Skipped(g, "x"), Failed(g, errors.New("y")),
	}}

	assert.Equal(t, 2, r.Applied())
	assert.Equal(t, 1, r.Skipped())
	assert.Equal(t, 1, r.Failed())
	assert.False(t, r.Aborted())

	r.Error = "listing failed"
	assert.True(t, r.Aborted())
}

func TestLogGroup_Retention(t *testing.T) {
	assert.False(t, LogGroup{}.HasRetention())

	days := int32(14)
	lg := LogGroup{RetentionInDays: &days}
	assert.True(t, lg.HasRetention())

	token := ""
	assert.False(t, LogGroupPage{NextToken: &token}.HasNext())
}

package entity

import (
	"fmt"
	"time"
)

// OutcomeStatus é o estado terminal de um log group na fase de aplicação.
type OutcomeStatus string

const (
	OutcomeApplied OutcomeStatus = "applied"
	OutcomeSkipped OutcomeStatus = "skipped"
	OutcomeFailed  OutcomeStatus = "failed"
)

// OperationOutcome is the per-group result of the retention applier.
type OperationOutcome struct {
	GroupName             string        `json:"group_name"`
	Status                OutcomeStatus `json:"status"`
	RetentionDays         int           `json:"retention_days,omitempty"`
	PreviousRetentionDays *int32        `json:"previous_retention_days,omitempty"`
	Reason                string        `json:"reason,omitempty"`
	Err                   error         `json:"-"`
	Error                 string        `json:"error,omitempty"`
}

// Applied builds an outcome for a group whose retention was set.
func Applied(group LogGroup, days int) OperationOutcome {
	return OperationOutcome{
		GroupName:             group.Name,
		Status:                OutcomeApplied,
		RetentionDays:         days,
		PreviousRetentionDays: group.RetentionInDays,
	}
}

// Skipped builds an outcome for a group left untouched.
func Skipped(group LogGroup, reason string) OperationOutcome {
	return OperationOutcome{
		GroupName:             group.Name,
		Status:                OutcomeSkipped,
		PreviousRetentionDays: group.RetentionInDays,
		Reason:                reason,
	}
}

// Failed builds an outcome for a group whose mutation call returned an error.
func Failed(group LogGroup, err error) OperationOutcome {
	out := OperationOutcome{
		GroupName:             group.Name,
		Status:                OutcomeFailed,
		PreviousRetentionDays: group.RetentionInDays,
		Err:                   err,
	}
	if err != nil {
		out.Error = err.Error()
	}
	return out
}

// Describe retorna uma descrição curta do resultado para o console.
func (o OperationOutcome) Describe() string {
	switch o.Status {
	case OutcomeApplied:
		return fmt.Sprintf("retention set to %s", formatDays(o.RetentionDays))
	case OutcomeSkipped:
		return "skipping - " + o.Reason
	case OutcomeFailed:
		return "failed - " + o.Error
	default:
		return string(o.Status)
	}
}

// RunReport consolida uma execução para um par perfil/região.
type RunReport struct {
	Profile       string             `json:"profile"`
	AccountID     string             `json:"account_id"`
	Region        string             `json:"region"`
	RetentionDays int                `json:"retention_days"`
	DryRun        bool               `json:"dry_run"`
	Discovered    int                `json:"discovered"`
	Pages         int                `json:"pages"`
	Truncated     bool               `json:"truncated"`
	Outcomes      []OperationOutcome `json:"outcomes"`
	StartedAt     time.Time          `json:"started_at"`
	FinishedAt    time.Time          `json:"finished_at"`
	Error         string             `json:"error,omitempty"`
}

// Applied returns the number of groups whose retention was changed.
func (r RunReport) Applied() int { return r.count(OutcomeApplied) }

// Skipped returns the number of groups left untouched.
func (r RunReport) Skipped() int { return r.count(OutcomeSkipped) }

// Failed returns the number of groups whose mutation failed.
func (r RunReport) Failed() int { return r.count(OutcomeFailed) }

// Aborted reports whether the run stopped during enumeration.
func (r RunReport) Aborted() bool { return r.Error != "" }

func (r RunReport) count(status OutcomeStatus) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

func formatDays(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

package usecase

import (
	"context"
	"fmt"

	"github.com/diillson/cwlogs-retention-go/internal/domain/entity"
	"github.com/diillson/cwlogs-retention-go/internal/shared/types"
)

const skipShorterReason = "same or lower retention period already set"

// RetentionSetter aplica a política de retenção a um único log group.
type RetentionSetter func(ctx context.Context, logGroupName string, days int) error

// OutcomeObserver recebe cada resultado assim que o log group termina.
type OutcomeObserver func(index int, outcome entity.OperationOutcome)

// ApplyRetention walks groups in order, one remote call at a time, and returns
// exactly one outcome per group. Mutation errors are recorded, never returned.
func ApplyRetention(
	ctx context.Context,
	groups []entity.LogGroup,
	settings types.Settings,
	set RetentionSetter,
	observe OutcomeObserver,
) []entity.OperationOutcome {
	outcomes := make([]entity.OperationOutcome, 0, len(groups))

	for i, lg := range groups {
		outcome := decideAndApply(ctx, lg, settings, set)
		outcomes = append(outcomes, outcome)
		if observe != nil {
			observe(i, outcome)
		}
	}

	return outcomes
}

func decideAndApply(ctx context.Context, lg entity.LogGroup, settings types.Settings, set RetentionSetter) entity.OperationOutcome {
	if settings.SkipShorterPeriods && lg.HasRetention() && int(*lg.RetentionInDays) <= settings.RetentionDays {
		return entity.Skipped(lg, skipShorterReason)
	}
	if pattern, ok := settings.ExcludedBy(lg.Name); ok {
		return entity.Skipped(lg, fmt.Sprintf("excluded by pattern %q", pattern))
	}
	if settings.DryRun {
		return entity.Skipped(lg, fmt.Sprintf("dry run: would set retention to %d days", settings.RetentionDays))
	}
	// Contexto cancelado: não inicia novas chamadas, registra a falha.
	if err := ctx.Err(); err != nil {
		return entity.Failed(lg, err)
	}

	if err := set(ctx, lg.Name, settings.RetentionDays); err != nil {
		return entity.Failed(lg, err)
	}
	return entity.Applied(lg, settings.RetentionDays)
}

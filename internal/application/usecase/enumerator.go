package usecase

import (
	"context"
	"fmt"

	"github.com/diillson/cwlogs-retention-go/internal/domain/entity"
	"github.com/diillson/cwlogs-retention-go/internal/shared/types"
)

// PageFetcher busca uma página de log groups a partir de um cursor opcional.
type PageFetcher func(ctx context.Context, limit int32, nextToken *string) (entity.LogGroupPage, error)

// EnumerateLogGroups reads every page exposed by fetch, earliest page first,
// stopping when the cursor runs out or settings.MaxPages pages were read.
// Hitting the page bound is not an error; the result is marked Truncated.
// Any fetch error discards what was accumulated.
func EnumerateLogGroups(ctx context.Context, fetch PageFetcher, settings types.Settings) (entity.EnumerationResult, error) {
	var (
		result    entity.EnumerationResult
		nextToken *string
		seen      = make(map[string]struct{})
	)

	for {
		page, err := fetch(ctx, settings.PageSize, nextToken)
		if err != nil {
			return entity.EnumerationResult{}, fmt.Errorf("listing log groups (page %d): %w", result.Pages+1, err)
		}
		result.Pages++

		for _, lg := range page.LogGroups {
			if _, dup := seen[lg.Name]; dup {
				continue
			}
			seen[lg.Name] = struct{}{}
			result.LogGroups = append(result.LogGroups, lg)
		}

		if !page.HasNext() {
			return result, nil
		}
		if result.Pages >= settings.MaxPages {
			result.Truncated = true
			return result, nil
		}
		nextToken = page.NextToken
	}
}

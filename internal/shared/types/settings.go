package types

import (
	"fmt"
	"slices"
	"strings"
)

const (
	DefaultRetentionDays = 30
	DefaultMaxPages      = 50
	// DefaultPageSize é também o máximo aceito por DescribeLogGroups.
	DefaultPageSize = 50
	DefaultRegion   = "us-east-1"
)

// ValidRetentionDays são os valores aceitos por PutRetentionPolicy.
var ValidRetentionDays = []int{
	1, 3, 5, 7, 14, 30, 60, 90, 120, 150, 180, 365, 400, 545, 731,
	1096, 1827, 2192, 2557, 2922, 3288, 3653,
}

// Settings is the validated, read-only configuration threaded through a run.
type Settings struct {
	RetentionDays      int
	MaxPages           int
	PageSize           int32
	SkipShorterPeriods bool
	LogGroupPrefix     string
	Exclude            []string
	DryRun             bool
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		RetentionDays:      DefaultRetentionDays,
		MaxPages:           DefaultMaxPages,
		PageSize:           DefaultPageSize,
		SkipShorterPeriods: true,
	}
}

// NewSettings valida os argumentos e constrói Settings imutáveis.
func NewSettings(args *CLIArgs) (Settings, error) {
	if err := ValidateRetentionDays(args.RetentionDays); err != nil {
		return Settings{}, err
	}
	if args.MaxPages < 1 {
		return Settings{}, fmt.Errorf("%w: max pages must be at least 1, got %d", ErrInvalidConfig, args.MaxPages)
	}
	if args.PageSize < 1 || args.PageSize > DefaultPageSize {
		return Settings{}, fmt.Errorf("%w: page size must be between 1 and %d, got %d", ErrInvalidConfig, DefaultPageSize, args.PageSize)
	}

	exclude := make([]string, 0, len(args.Exclude))
	for _, e := range args.Exclude {
		if e = strings.TrimSpace(e); e != "" {
			exclude = append(exclude, e)
		}
	}

	return Settings{
		RetentionDays:      args.RetentionDays,
		MaxPages:           args.MaxPages,
		PageSize:           int32(args.PageSize),
		SkipShorterPeriods: args.SkipShorterPeriods,
		LogGroupPrefix:     args.LogGroupPrefix,
		Exclude:            exclude,
		DryRun:             args.DryRun,
	}, nil
}

// ValidateRetentionDays checks days against ValidRetentionDays.
func ValidateRetentionDays(days int) error {
	if slices.Contains(ValidRetentionDays, days) {
		return nil
	}
	valid := make([]string, len(ValidRetentionDays))
	for i, d := range ValidRetentionDays {
		valid[i] = fmt.Sprint(d)
	}
	return fmt.Errorf("%w: %d, please use one of the valid options: %s",
		ErrInvalidRetentionDays, days, strings.Join(valid, ", "))
}

// ExcludedBy retorna o padrão de exclusão que casa com o nome, se houver.
func (s Settings) ExcludedBy(name string) (string, bool) {
	for _, pattern := range s.Exclude {
		if strings.Contains(name, pattern) {
			return pattern, true
		}
	}
	return "", false
}

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validArgs() *CLIArgs {
	return &CLIArgs{
		RetentionDays:      DefaultRetentionDays,
		MaxPages:           DefaultMaxPages,
		PageSize:           DefaultPageSize,
		SkipShorterPeriods: true,
	}
}

func TestValidateRetentionDays(t *testing.T) {
	for _, d := range ValidRetentionDays {
		assert.NoError(t, ValidateRetentionDays(d), "days=%d", d)
	}

	for _, d := range []int{0, -1, 2, 31, 366, 4000} {
		err := ValidateRetentionDays(d)
		assert.ErrorIs(t, err, ErrInvalidRetentionDays, "days=%d", d)
	}

	err := ValidateRetentionDays(2)
	assert.Contains(t, err.Error(), "1, 3, 5, 7, 14, 30")
}

func TestNewSettings(t *testing.T) {
	args := validArgs()
	args.RetentionDays = 14
	args.PageSize = 20
	args.LogGroupPrefix = "/aws/"
	args.Exclude = []string{" /keep ", "", "audit"}
	args.DryRun = true

	s, err := NewSettings(args)
	require.NoError(t, err)

	assert.Equal(t, 14, s.RetentionDays)
	assert.Equal(t, int32(20), s.PageSize)
	assert.Equal(t, "/aws/", s.LogGroupPrefix)
	assert.Equal(t, []string{"/keep", "audit"}, s.Exclude)
	assert.True(t, s.DryRun)
	assert.True(t, s.SkipShorterPeriods)
}

func TestNewSettings_Invalid(t *testing.T) {
	tests := map[string]func(a *CLIArgs){
		"retention":       func(a *CLIArgs) { a.RetentionDays = 42 },
		"max pages":       func(a *CLIArgs) { a.MaxPages = 0 },
		"page size zero":  func(a *CLIArgs) { a.PageSize = 0 },
		"page size above": func(a *CLIArgs) { a.PageSize = 51 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			args := validArgs()
			mutate(args)
			_, err := NewSettings(args)
			assert.Error(t, err)
		})
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 30, s.RetentionDays)
	assert.Equal(t, 50, s.MaxPages)
	assert.Equal(t, int32(50), s.PageSize)
	assert.True(t, s.SkipShorterPeriods)
}

func TestExcludedBy(t *testing.T) {
	s := Settings{Exclude: []string{"lambda", "/keep/"}}

	p, ok := s.ExcludedBy("/aws/lambda/fn")
	assert.True(t, ok)
	assert.Equal(t, "lambda", p)

	_, ok = s.ExcludedBy("/ecs/api")
	assert.False(t, ok)
}

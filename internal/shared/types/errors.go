package types

import "errors"

var (
	ErrInvalidConfig        = errors.New("invalid configuration")
	ErrInvalidRetentionDays = errors.New("invalid retention period")
	ErrNoRegionsResolved    = errors.New("no AWS regions resolved. Use --regions or configure a default region")
	ErrRunFailed            = errors.New("retention run finished with failures")
)

// Erros remotos classificados a partir das respostas do CloudWatch Logs.
var (
	ErrNotFound              = errors.New("log group not found")
	ErrRemoteUnavailable     = errors.New("remote service unavailable")
	ErrRateLimited           = errors.New("request rate limited")
	ErrInvalidRetentionValue = errors.New("retention value rejected by remote service")
)

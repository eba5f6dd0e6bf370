package aws

import (
	"errors"
	"fmt"
	"net"

	cwlTypes "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"github.com/aws/smithy-go"

	"github.com/diillson/cwlogs-retention-go/internal/shared/types"
)

// Códigos de erro de throttling retornados pelas APIs da AWS.
var throttlingCodes = map[string]bool{
	"ThrottlingException":                    true,
	"Throttling":                             true,
	"TooManyRequestsException":               true,
	"RequestLimitExceeded":                   true,
	"RequestThrottled":                       true,
	"ProvisionedThroughputExceededException": true,
}

var unavailableCodes = map[string]bool{
	"ServiceUnavailable":          true,
	"ServiceUnavailableException": true,
	"InternalFailure":             true,
	"InternalServerError":         true,
}

// classifyError wraps err with the matching domain sentinel so callers can use
// errors.Is without depending on SDK types. Unknown errors pass through.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var notFound *cwlTypes.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: %w", types.ErrNotFound, err)
	}

	var unavailable *cwlTypes.ServiceUnavailableException
	if errors.As(err, &unavailable) {
		return fmt.Errorf("%w: %w", types.ErrRemoteUnavailable, err)
	}

	var invalid *cwlTypes.InvalidParameterException
	if errors.As(err, &invalid) {
		return fmt.Errorf("%w: %w", types.ErrInvalidRetentionValue, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch code := apiErr.ErrorCode(); {
		case throttlingCodes[code]:
			return fmt.Errorf("%w: %w", types.ErrRateLimited, err)
		case unavailableCodes[code]:
			return fmt.Errorf("%w: %w", types.ErrRemoteUnavailable, err)
		}
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %w", types.ErrRemoteUnavailable, err)
	}

	return err
}

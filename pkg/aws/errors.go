package aws

import (
	"errors"

	"github.com/aws/smithy-go"
	"github.com/younsl/autostop/pkg/retry"
)

// Error codes that no retry can fix
var permanentCodes = map[string]bool{
	"AccessDenied":                true,
	"AccessDeniedException":       true,
	"UnauthorizedOperation":       true,
	"UnrecognizedClientException": true,
	"InvalidClientTokenId":        true,
	"ExpiredToken":                true,
	"InvalidInstanceID.NotFound":  true,
	"InvalidInstanceID.Malformed": true,
	"ResourceNotFound":            true,
}

// ErrorCode returns the API error code of err, or "" when err did not come
// from an AWS API
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// classify marks errors that cannot succeed on retry as permanent
func classify(err error) error {
	if err == nil {
		return nil
	}
	if permanentCodes[ErrorCode(err)] {
		return retry.Permanent(err)
	}
	return err
}

package gemini

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/kirillkom/email-triage-assistant/internal/core/domain"
)

const statusResourceExhausted = "RESOURCE_EXHAUSTED"

var errEmptyResponse = errors.New("gemini returned no text")

// translateError maps provider failures onto the two upstream kinds. Only
// quota exhaustion is distinguished; everything else, including deadlines and
// an open circuit, is a generic upstream failure.
func translateError(operation string, err error) error {
	if err == nil {
		return nil
	}
	if isQuotaExhausted(err) {
		return domain.WrapError(domain.ErrQuotaExceeded, operation, err)
	}
	return domain.WrapError(domain.ErrUpstream, operation, err)
}

func isQuotaExhausted(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || strings.EqualFold(apiErr.Status, statusResourceExhausted)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code == http.StatusTooManyRequests || strings.EqualFold(apiErrPtr.Status, statusResourceExhausted)
	}
	return false
}

// recordFailure keeps quota exhaustion, caller cancellation and content-level
// empty answers out of the breaker's failure counts.
func recordFailure(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, errEmptyResponse) {
		return false
	}
	return !isQuotaExhausted(err)
}

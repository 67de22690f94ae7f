package cognito

import (
	"errors"

	"github.com/aws/smithy-go"
)

// ProviderError wraps an identity-provider failure. PublicMessage is the
// only text allowed to reach API callers; it is set deliberately at
// construction from the provider's own API error message, never derived by
// truncating internal error strings.
type ProviderError struct {
	Op            string
	PublicMessage string
	Err           error
}

func (e *ProviderError) Error() string {
	return "cognito: " + e.Op + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

const defaultPublicMessage = "authentication provider request failed"

func providerError(op string, err error) *ProviderError {
	public := defaultPublicMessage
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorMessage() != "" {
		public = apiErr.ErrorMessage()
	}
	return &ProviderError{Op: op, PublicMessage: public, Err: err}
}

package permissions

import (
	"errors"
	"fmt"
)

// InputError reports a user-supplied value that cannot be acted on. No schema
// is fetched when one is returned.
type InputError struct {
	Field   string
	Value   string
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

// NetworkError reports a failed schema fetch: a transport failure, a non-2xx
// response, or a body that is not a usable schema document.
type NetworkError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%d %s for url: %s", e.StatusCode, statusText(e.StatusCode), e.URL)
	}
	if e.URL != "" {
		return fmt.Sprintf("%s: %v", e.URL, e.Err)
	}
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsInputError reports whether err is, or wraps, an *InputError
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

// IsNetworkError reports whether err is, or wraps, a *NetworkError
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

package params

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"paramd/pkg/types"
)

// ValidationError aggregates every problem found while extracting the
// inputs of one request.
type ValidationError struct {
	Issues []types.Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", locString(is.Loc), is.Msg))
	}
	return fmt.Sprintf("validation failed (%d issue(s)): %s", len(e.Issues), strings.Join(parts, "; "))
}

// StatusCode maps validation failures to 422 Unprocessable Entity.
func (e *ValidationError) StatusCode() int { return http.StatusUnprocessableEntity }

// AsValidation reports whether err is, or wraps, a ValidationError.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func locString(loc []any) string {
	parts := make([]string, len(loc))
	for i, l := range loc {
		parts[i] = fmt.Sprint(l)
	}
	return strings.Join(parts, ".")
}

// issues is an append-only collector that turns into a *ValidationError.
type issues []types.Issue

func (is *issues) add(loc []any, typ, msg string, input any) {
	*is = append(*is, types.Issue{Loc: loc, Msg: msg, Type: typ, Input: input})
}

func (is issues) err() error {
	if len(is) == 0 {
		return nil
	}
	return &ValidationError{Issues: is}
}

func missing(loc []any) types.Issue {
	return types.Issue{Loc: loc, Msg: "Field required", Type: "missing"}
}

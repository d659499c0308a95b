package moderation

import "errors"

// Failure taxonomy shared by both provider clients. Every remote-call
// failure is mapped onto one of these before it reaches the caller, so
// shells can distinguish "could not analyze" from "analyzed as safe".
var (
	ErrNoInput            = errors.New("no image or text provided")
	ErrMissingCredentials = errors.New("missing credentials")
	ErrEmptyText          = errors.New("empty text")
	ErrNonSuccessStatus   = errors.New("provider returned non-success status")
	ErrInvalidJSON        = errors.New("provider returned invalid JSON")
	ErrMissingField       = errors.New("provider response missing required field")
	ErrNonNumericSeverity = errors.New("provider returned non-numeric severity")
	ErrOutOfRangeSeverity = errors.New("provider returned out-of-range severity")
	ErrEmptyCategoryList  = errors.New("provider response contained no parseable categories")
	ErrUnknownSentiment   = errors.New("provider returned unknown sentiment value")
	ErrPollTimeout        = errors.New("analysis job did not complete within the poll budget")
)

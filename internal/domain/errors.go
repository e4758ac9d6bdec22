package domain

import "errors"

// Domain errors.
var (
	// ErrInvalidTimestamp is returned when a created_at value cannot be parsed.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrLoadFailed is returned when the tweet document cannot be read or decoded.
	ErrLoadFailed = errors.New("tweet document load failed")

	// ErrUnexpectedStatus is returned when the document source answers with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrDocumentTooLarge is returned when the document exceeds the configured size limit.
	ErrDocumentTooLarge = errors.New("tweet document too large")

	// ErrNotAnArray is returned when the document's top-level value is not a JSON array.
	ErrNotAnArray = errors.New("tweet document is not a JSON array")
)

// RecordError wraps an error with the tweet it concerns.
type RecordError struct {
	TweetID TweetID
	Op      string
	Err     error
}

func (e *RecordError) Error() string {
	if e.TweetID != "" {
		return e.Op + " [" + e.TweetID.String() + "]: " + e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// NewRecordError creates a new RecordError.
func NewRecordError(id TweetID, op string, err error) *RecordError {
	return &RecordError{
		TweetID: id,
		Op:      op,
		Err:     err,
	}
}

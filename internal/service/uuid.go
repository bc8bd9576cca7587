package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidRecordID wraps every rejection of a client-supplied record ID
	ErrInvalidRecordID = errors.New("invalid record id")
	// ErrNotUUIDv7 indicates the UUID is not version 7
	ErrNotUUIDv7 = errors.New("UUID must be version 7")
	// ErrFutureTimestamp indicates the UUIDv7 timestamp is too far in the future
	ErrFutureTimestamp = errors.New("UUID timestamp is too far in the future")
)

// MaxFutureSkew is how far ahead of the server clock a client-generated
// record ID may be
const MaxFutureSkew = time.Minute

// NewRecordID returns a fresh UUIDv7, which sorts by creation time
func NewRecordID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate record id: %w", err)
	}
	return id.String(), nil
}

// ValidateRecordID checks a client-supplied ID: it must be a UUIDv7 whose
// embedded timestamp is not more than MaxFutureSkew after now
func ValidateRecordID(id string, now time.Time) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecordID, err)
	}

	if parsed.Version() != 7 {
		return fmt.Errorf("%w: %w: got version %d", ErrInvalidRecordID, ErrNotUUIDv7, parsed.Version())
	}

	timestamp := RecordIDTimestamp(parsed.String())
	if timestamp.After(now.Add(MaxFutureSkew)) {
		return fmt.Errorf("%w: %w: %v is ahead of the server clock",
			ErrInvalidRecordID, ErrFutureTimestamp, timestamp.Format(time.RFC3339))
	}

	return nil
}

// RecordIDTimestamp extracts the embedded timestamp from a UUIDv7.
// Returns zero time if parsing fails.
func RecordIDTimestamp(id string) time.Time {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return time.Time{}
	}
	// UUID.Time() is derived from the embedded Unix milliseconds for v7
	sec, nsec := parsed.Time().UnixTime()
	return time.Unix(sec, nsec)
}

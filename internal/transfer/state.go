package transfer

import "github.com/google/uuid"

type Status int

const (
	StatusIdle Status = iota
	StatusActive
	StatusCompleted
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// TransferState is a snapshot of the tracked transfer.
// BytesExpected is nil while the total size is unknown.
type TransferState struct {
	ID            uuid.UUID
	URI           string
	BytesWritten  int64
	BytesExpected *int64
	Ratio         float64
	Status        Status
	LocalPath     string
	Err           error
}

func (s TransferState) clone() TransferState {
	if s.BytesExpected != nil {
		v := *s.BytesExpected
		s.BytesExpected = &v
	}
	return s
}

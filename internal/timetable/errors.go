package timetable

import (
	"errors"

	"github.com/yamkelajack06/Study-Flow/internal/entry"
	"github.com/yamkelajack06/Study-Flow/internal/schedule"
	"github.com/yamkelajack06/Study-Flow/internal/storage"
)

// Failure causes reported in Result.Err. Match them with errors.Is.
var (
	ErrFormat            = schedule.ErrFormat
	ErrInvalidOrder      = schedule.ErrInvalidOrder
	ErrInvalidEntry      = entry.ErrInvalid
	ErrNotFound          = storage.ErrNotFound
	ErrInvalidIdentifier = storage.ErrInvalidIdentifier
	ErrConflict          = errors.New("time slot conflict")
	ErrPersistence       = errors.New("storage unavailable")
)

// Result is the outcome of a single store operation. Expected rejections
// are reported here, never as panics.
type Result struct {
	OK        bool
	Cancelled bool
	Message   string
	Err       error
	Entry     *entry.Entry
}

func success(e entry.Entry, msg string) Result {
	return Result{OK: true, Message: msg, Entry: &e}
}

func failure(err error, msg string) Result {
	if msg == "" {
		msg = err.Error()
	}
	return Result{Err: err, Message: msg}
}

package serialization

import (
	"errors"
	"fmt"
)

// ErrCorrupt matches every error caused by the content of a checkpoint
// rather than by I/O: bad checksums, inconsistent tensor tables, oversized
// headers.
var ErrCorrupt = errors.New("corrupt checkpoint")

var (
	// ErrNotCheckpoint: the input does not start with the .born magic.
	ErrNotCheckpoint = errors.New("not a .born checkpoint")
	// ErrUnsupportedVersion: a .born file of another format version.
	ErrUnsupportedVersion = errors.New("unsupported .born format version")
	// ErrChecksumMismatch: the data section does not hash to the header checksum.
	ErrChecksumMismatch = fmt.Errorf("%w: data checksum mismatch", ErrCorrupt)
)

// ValidationError reports an inconsistent tensor table entry.
type ValidationError struct {
	Type    string // "offset_overlap", "out_of_bounds", "size_mismatch", ...
	Tensor  string // Tensor the entry describes, if any
	Other   string // Second tensor of an overlap
	Details string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msg := "checkpoint " + e.Type
	switch {
	case e.Other != "":
		msg += fmt.Sprintf(" between %q and %q", e.Tensor, e.Other)
	case e.Tensor != "":
		msg += fmt.Sprintf(" in %q", e.Tensor)
	}
	return msg + ": " + e.Details
}

// Unwrap makes every ValidationError match ErrCorrupt.
func (e *ValidationError) Unwrap() error {
	return ErrCorrupt
}

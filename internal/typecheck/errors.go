package typecheck

import (
	"errors"
	"fmt"
	"strings"
)

// Error classes of a rejected checked call. Match with errors.Is.
var (
	ErrContractMissing = errors.New("object does not implement the Typing capability")
	ErrBinding         = errors.New("argument binding failed")
	ErrTypeMismatch    = errors.New("neural type mismatch")
)

// CheckError describes a rejected checked call.
type CheckError struct {
	Kind    error  // ErrContractMissing, ErrBinding or ErrTypeMismatch
	Port    string // Port involved, if any
	Path    []int  // Index path inside a nested value
	Details string
}

// Error implements the error interface.
func (e *CheckError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Port != "" {
		fmt.Fprintf(&b, ": port %q", e.Port)
		for _, i := range e.Path {
			fmt.Fprintf(&b, "[%d]", i)
		}
	}
	if e.Details != "" {
		b.WriteString(": ")
		b.WriteString(e.Details)
	}
	return b.String()
}

// Unwrap returns the error class.
func (e *CheckError) Unwrap() error {
	return e.Kind
}

func bindingErr(port, format string, args ...any) error {
	return &CheckError{Kind: ErrBinding, Port: port, Details: fmt.Sprintf(format, args...)}
}

func mismatchErr(port string, path []int, format string, args ...any) error {
	return &CheckError{
		Kind:    ErrTypeMismatch,
		Port:    port,
		Path:    append([]int(nil), path...),
		Details: fmt.Sprintf(format, args...),
	}
}

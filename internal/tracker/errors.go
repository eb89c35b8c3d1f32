// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package tracker

import (
	"errors"
	"fmt"
)

// Kind classifies a user-facing failure of the store.
type Kind int

const (
	// KindInternal marks errors that carry no tag. They are never shown to the user verbatim.
	KindInternal Kind = iota
	KindMissingRequiredField
	KindDuplicateKey
	KindNotFound
	KindAmbiguousMatch
	KindInvalidStatus
	KindInvalidDate
	KindSchemaMismatch
	KindStorageUnavailable
	KindNothingToUpdate
	KindAlreadyExists
	KindInvalidArgument
)

var kindNames = map[Kind]string{
	KindInternal:             "internal",
	KindMissingRequiredField: "missing required field",
	KindDuplicateKey:         "duplicate key",
	KindNotFound:             "not found",
	KindAmbiguousMatch:       "ambiguous match",
	KindInvalidStatus:        "invalid status",
	KindInvalidDate:          "invalid date",
	KindSchemaMismatch:       "schema mismatch",
	KindStorageUnavailable:   "storage unavailable",
	KindNothingToUpdate:      "nothing to update",
	KindAlreadyExists:        "already exists",
	KindInvalidArgument:      "invalid argument",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is an expected failure that can be reported to the user as a single line.
// Msg is the full message; Err is the wrapped cause, kept for errors.Is/As.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds a tagged error. A %w verb in format is preserved for errors.Is/As.
func Errorf(kind Kind, format string, args ...any) error {
	wrapped := fmt.Errorf(format, args...)
	return &Error{Kind: kind, Msg: wrapped.Error(), Err: errors.Unwrap(wrapped)}
}

// KindOf returns the kind of the first tagged error in err's chain,
// or KindInternal if there is none.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// IsUserFacing reports whether err is an expected failure whose message can be
// printed as-is. Anything else should be logged and reported generically.
func IsUserFacing(err error) bool {
	return err != nil && KindOf(err) != KindInternal
}

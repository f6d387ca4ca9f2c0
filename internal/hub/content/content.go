// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

/*
Package content defines the shared addressing type for hub content.

Comments and likes can target either a script or a program. Rather than
inferring the target kind from which of two optional IDs happens to be
present, every call path carries an explicit [Ref] whose Kind names the
variant. A Ref is valid only when its kind is known and its ID is set.
*/
package content

import (
	"github.com/av3hub/avhub/internal/platform/apperr"
)

// Kind names the content variant a [Ref] addresses.
type Kind string

const (
	KindScript  Kind = "script"
	KindProgram Kind = "program"
)

// Ref addresses one piece of hub content by explicit kind and ID.
type Ref struct {
	Kind Kind   `json:"kind"`
	ID   string `json:"id"`
}

// ScriptRef builds a Ref targeting a script.
func ScriptRef(id string) Ref { return Ref{Kind: KindScript, ID: id} }

// ProgramRef builds a Ref targeting a program.
func ProgramRef(id string) Ref { return Ref{Kind: KindProgram, ID: id} }

// Validate reports whether the Ref addresses a known kind with a non-empty ID.
func (ref Ref) Validate() error {
	if ref.Kind != KindScript && ref.Kind != KindProgram {
		return apperr.ValidationError("Unknown content kind", apperr.FieldError{
			Field:   "kind",
			Message: "must be \"script\" or \"program\"",
		})
	}
	if ref.ID == "" {
		return apperr.ValidationError("Missing content id", apperr.FieldError{
			Field:   "id",
			Message: "is required",
		})
	}
	return nil
}

// Columns splits the Ref into the nullable column pair used by the
// comment and like tables. Exactly one of the returned pointers is set.
func (ref Ref) Columns() (scriptID, programID *string) {
	switch ref.Kind {
	case KindScript:
		return &ref.ID, nil
	case KindProgram:
		return nil, &ref.ID
	}
	return nil, nil
}

// FromColumns rebuilds a Ref from the nullable column pair. It returns
// false when neither or both columns are set, which indicates a row that
// violates the storage invariant.
func FromColumns(scriptID, programID *string) (Ref, bool) {
	switch {
	case scriptID != nil && programID == nil:
		return Ref{Kind: KindScript, ID: *scriptID}, true
	case programID != nil && scriptID == nil:
		return Ref{Kind: KindProgram, ID: *programID}, true
	}
	return Ref{}, false
}

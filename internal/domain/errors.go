package domain

import (
	"errors"
	"fmt"

	m "ngshift.dev/pkg/ngshift/internal/model"
)

var (
	// ErrInvalidReference reports a classification entry that does not
	// resolve to a suitable node of the tree being converted.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrAmbiguousAnnotationMatch reports more than one modifier entry
	// matching an annotation removal on the same declaration.
	ErrAmbiguousAnnotationMatch = errors.New("ambiguous annotation match")

	// ErrOverlappingEdits reports two edits touching the same region that
	// were not emitted as one composite step.
	ErrOverlappingEdits = errors.New("overlapping edits")

	// ErrSourceChanged reports a file modified on disk between reading and
	// writing back its converted text.
	ErrSourceChanged = errors.New("source changed during conversion")
)

// ReferenceError identifies the offending classification entry.
type ReferenceError struct {
	Field  string
	Node   m.NodeID
	Reason string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s: %s #%d: %s", ErrInvalidReference, e.Field, e.Node, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidReference) hold.
func (e *ReferenceError) Is(target error) bool {
	return target == ErrInvalidReference
}

// AmbiguityError lists the candidates found for one removal.
type AmbiguityError struct {
	Owner      m.NodeID
	Target     string
	Candidates []m.NodeID
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("%s: %d candidates for %q on #%d", ErrAmbiguousAnnotationMatch, len(e.Candidates), e.Target, e.Owner)
}

// Is makes errors.Is(err, ErrAmbiguousAnnotationMatch) hold.
func (e *AmbiguityError) Is(target error) bool {
	return target == ErrAmbiguousAnnotationMatch
}

// OverlapError names the two conflicting edits.
type OverlapError struct {
	First  m.Edit
	Second m.Edit
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("%s: %s and %s", ErrOverlappingEdits, e.First, e.Second)
}

// Is makes errors.Is(err, ErrOverlappingEdits) hold.
func (e *OverlapError) Is(target error) bool {
	return target == ErrOverlappingEdits
}

package hmm

import (
	"errors"
	"fmt"

	nlp "yu-val-weiss/hmmtag/nlp/types"
)

var ErrEmptySentence = errors.New("cannot decode an empty sentence")

// VocabularyError reports tag or morpheme universes that cannot be used
// together, e.g. an empty training corpus or a model missing its UNK row.
type VocabularyError struct {
	Reason string
}

func (e *VocabularyError) Error() string {
	return "vocabulary error: " + e.Reason
}

// UnviablePathError is returned when every tag at some position of a
// sentence has zero probability.
type UnviablePathError struct {
	Position int
	Morpheme nlp.Morpheme
}

func (e *UnviablePathError) Error() string {
	return fmt.Sprintf("no viable tag path at position %d (morpheme %q)", e.Position, string(e.Morpheme))
}

// SentenceError ties a decoding failure to its sentence in a batch.
type SentenceError struct {
	Index int
	Err   error
}

func (e *SentenceError) Error() string {
	return fmt.Sprintf("sentence %d: %v", e.Index+1, e.Err)
}

func (e *SentenceError) Unwrap() error {
	return e.Err
}

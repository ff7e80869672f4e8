package hmm

import (
	"encoding/gob"
	"fmt"
	"io"
	"math"
	"os"

	"gonum.org/v1/gonum/floats"

	nlp "yu-val-weiss/hmmtag/nlp/types"
	"yu-val-weiss/hmmtag/util"
)

func init() {
	gob.Register(&Model{})
}

// Model is a trained bigram HMM. It is read-only once trained.
type Model struct {
	Transitions *TransitionMatrix
	Emissions   *EmissionMatrix
	Tags        *util.EnumSet
	Vocabulary  *util.EnumSet
	Boundary    nlp.Tag
	Unk         nlp.Morpheme
}

const rowSumTolerance = 1e-9

// Validate checks that every transition is finite with each row summing to
// one, and that every emission is finite or NegInf.
func (m *Model) Validate() error {
	if m.Transitions == nil || m.Emissions == nil {
		return &VocabularyError{"model has no matrices"}
	}
	row := make([]float64, m.Transitions.To.Len())
	for i, logProbs := range m.Transitions.LogProbs {
		from := m.Transitions.From.ValueOf(i)
		for j, lp := range logProbs {
			if math.IsNaN(lp) || math.IsInf(lp, 0) {
				return fmt.Errorf("transition %s -> %s is not finite: %v", from, m.Transitions.To.ValueOf(j), lp)
			}
			row[j] = math.Exp2(lp)
		}
		if sum := floats.Sum(row); math.Abs(sum-1) > rowSumTolerance {
			return fmt.Errorf("transitions from %s sum to %v", from, sum)
		}
	}
	for i, logProbs := range m.Emissions.LogProbs {
		for j, lp := range logProbs {
			if math.IsNaN(lp) || math.IsInf(lp, 1) || lp > 0 {
				return fmt.Errorf("emission %s/%s is invalid: %v", m.Emissions.Morphemes.ValueOf(i), m.Emissions.Tags.ValueOf(j), lp)
			}
		}
	}
	return nil
}

// Known replaces the morphemes missing from the vocabulary with Unk.
func (m *Model) Known(sent nlp.Sentence) nlp.Sentence {
	retval := make(nlp.Sentence, len(sent))
	for i, morpheme := range sent {
		if m.Vocabulary.Contains(string(morpheme)) {
			retval[i] = morpheme
		} else {
			retval[i] = m.Unk
		}
	}
	return retval
}

func (m *Model) TagList() nlp.Tags {
	return nlp.NewTagsFrom(m.Tags.Values())
}

func WriteModel(writer io.Writer, m *Model) error {
	return gob.NewEncoder(writer).Encode(m)
}

func ReadModel(reader io.Reader) (*Model, error) {
	m := &Model{}
	if err := gob.NewDecoder(reader).Decode(m); err != nil {
		return nil, err
	}
	return m, nil
}

func WriteModelFile(file string, m *Model) error {
	fObj, err := os.Create(file)
	if err != nil {
		return err
	}
	defer fObj.Close()
	return WriteModel(fObj, m)
}

func ReadModelFile(file string) (*Model, error) {
	fObj, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer fObj.Close()
	return ReadModel(fObj)
}

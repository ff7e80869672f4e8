package hmm

import (
	nlp "yu-val-weiss/hmmtag/nlp/types"
	"yu-val-weiss/hmmtag/util"
)

// TransitionMatrix holds log2 P(cur | prev) for prev in From and cur in To.
type TransitionMatrix struct {
	From, To *util.EnumSet
	LogProbs [][]float64
}

func NewTransitionMatrix(from, to []string) *TransitionMatrix {
	m := &TransitionMatrix{
		From: util.NewSortedEnumSet(from),
		To:   util.NewSortedEnumSet(to),
	}
	m.LogProbs = newLogMatrix(m.From.Len(), m.To.Len())
	return m
}

func (m *TransitionMatrix) LogProb(prev, cur nlp.Tag) (float64, bool) {
	i, exists := m.From.IndexOf(string(prev))
	if !exists {
		return NegInf, false
	}
	j, exists := m.To.IndexOf(string(cur))
	if !exists {
		return NegInf, false
	}
	return m.LogProbs[i][j], true
}

// Set is used when building a matrix by hand; trained matrices are not
// modified after estimation.
func (m *TransitionMatrix) Set(prev, cur nlp.Tag, logProb float64) bool {
	i, exists := m.From.IndexOf(string(prev))
	if !exists {
		return false
	}
	j, exists := m.To.IndexOf(string(cur))
	if !exists {
		return false
	}
	m.LogProbs[i][j] = logProb
	return true
}

// EmissionMatrix holds log2 P(morpheme | tag), NegInf for pairs never seen
// in training.
type EmissionMatrix struct {
	Morphemes, Tags *util.EnumSet
	LogProbs        [][]float64
}

func NewEmissionMatrix(morphemes, tags []string) *EmissionMatrix {
	m := &EmissionMatrix{
		Morphemes: util.NewSortedEnumSet(morphemes),
		Tags:      util.NewSortedEnumSet(tags),
	}
	m.LogProbs = newLogMatrix(m.Morphemes.Len(), m.Tags.Len())
	return m
}

func (m *EmissionMatrix) LogProb(morpheme nlp.Morpheme, tag nlp.Tag) (float64, bool) {
	i, exists := m.Morphemes.IndexOf(string(morpheme))
	if !exists {
		return NegInf, false
	}
	j, exists := m.Tags.IndexOf(string(tag))
	if !exists {
		return NegInf, false
	}
	return m.LogProbs[i][j], true
}

func (m *EmissionMatrix) Set(morpheme nlp.Morpheme, tag nlp.Tag, logProb float64) bool {
	i, exists := m.Morphemes.IndexOf(string(morpheme))
	if !exists {
		return false
	}
	j, exists := m.Tags.IndexOf(string(tag))
	if !exists {
		return false
	}
	m.LogProbs[i][j] = logProb
	return true
}

func newLogMatrix(rows, cols int) [][]float64 {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = NegInf
	}
	retval := make([][]float64, rows)
	for i := range retval {
		retval[i] = data[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return retval
}

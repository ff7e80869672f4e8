package hmm

import (
	nlp "yu-val-weiss/hmmtag/nlp/types"
)

// Counts are the tallies taken over an indexed corpus.
type Counts struct {
	// Bigrams[from][to] indexes From by Index.Sources and To by the
	// transition targets.
	Bigrams   [][]int
	FromTotal []int
	// Emissions[morpheme][tag] indexes by Index.Vocabulary and Index.Tags.
	Emissions [][]int
	TagTotal  []int
}

// Estimate computes the smoothed transition matrix and the emission matrix
// of an indexed corpus.
func Estimate(idx *Index) (*TransitionMatrix, *EmissionMatrix, *Counts) {
	transitions := NewTransitionMatrix(idx.Sources.Values(), idx.TransitionTargets())
	emissions := NewEmissionMatrix(idx.Vocabulary.Values(), idx.Tags.Values())
	counts := Tally(idx, transitions, emissions)

	vt := float64(idx.Sources.Len())
	for i := range transitions.LogProbs {
		denom := float64(counts.FromTotal[i]) + vt
		for j := range transitions.LogProbs[i] {
			transitions.LogProbs[i][j] = Log2Prob(float64(counts.Bigrams[i][j]+1) / denom)
		}
	}

	for i := range emissions.LogProbs {
		for j := range emissions.LogProbs[i] {
			if c := counts.Emissions[i][j]; c > 0 {
				emissions.LogProbs[i][j] = Log2Prob(float64(c) / float64(counts.TagTotal[j]))
			}
		}
	}
	return transitions, emissions, counts
}

// Tally walks the indexed pairs left to right counting tag bigrams and
// morpheme/tag pairs. The previous tag starts as the boundary and returns to
// it after every sentence end.
func Tally(idx *Index, transitions *TransitionMatrix, emissions *EmissionMatrix) *Counts {
	counts := &Counts{
		Bigrams:   newCountMatrix(transitions.From.Len(), transitions.To.Len()),
		FromTotal: make([]int, transitions.From.Len()),
		Emissions: newCountMatrix(emissions.Morphemes.Len(), emissions.Tags.Len()),
		TagTotal:  make([]int, emissions.Tags.Len()),
	}
	boundary := idx.Options.Boundary
	prev := boundary
	for _, pair := range idx.Pairs {
		from, _ := transitions.From.IndexOf(string(prev))
		to, _ := transitions.To.IndexOf(string(pair.Tag))
		counts.Bigrams[from][to]++
		counts.FromTotal[from]++
		if pair.Tag == boundary {
			prev = boundary
			continue
		}
		prev = pair.Tag
		morpheme, _ := emissions.Morphemes.IndexOf(string(pair.Morpheme))
		tag, _ := emissions.Tags.IndexOf(string(pair.Tag))
		counts.Emissions[morpheme][tag]++
		counts.TagTotal[tag]++
	}
	return counts
}

// Train indexes the tagged pairs and estimates a model from them.
func Train(pairs []nlp.TaggedMorpheme, opts Options) (*Model, *Index, error) {
	idx, err := NewIndex(pairs, opts)
	if err != nil {
		return nil, nil, err
	}
	transitions, emissions, _ := Estimate(idx)
	m := &Model{
		Transitions: transitions,
		Emissions:   emissions,
		Tags:        idx.Tags,
		Vocabulary:  idx.Vocabulary,
		Boundary:    opts.Boundary,
		Unk:         opts.Unk,
	}
	return m, idx, nil
}

func newCountMatrix(rows, cols int) [][]int {
	data := make([]int, rows*cols)
	retval := make([][]int, rows)
	for i := range retval {
		retval[i] = data[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return retval
}

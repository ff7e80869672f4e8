package hmm

import (
	"gonum.org/v1/gonum/floats"

	nlp "yu-val-weiss/hmmtag/nlp/types"
)

// Decoder finds the most probable tag sequence of a sentence under a trained
// model. Tags are ordered lexicographically and every argmax keeps the
// first maximum, so ties go to the smallest tag. A Decoder is safe for
// concurrent use.
type Decoder struct {
	model *Model
	tags  nlp.Tags
	// start[t] is log P(t | boundary); trans[p][t] is log P(t | p).
	start []float64
	trans [][]float64
	// emitCol[t] is the emission matrix column of tag t.
	emitCol []int
	unkRow  int
}

func NewDecoder(m *Model) (*Decoder, error) {
	if m == nil || m.Transitions == nil || m.Emissions == nil || m.Tags == nil || m.Vocabulary == nil {
		return nil, &VocabularyError{"incomplete model"}
	}
	if m.Tags.Len() == 0 {
		return nil, &VocabularyError{"empty tag set"}
	}
	d := &Decoder{
		model:   m,
		tags:    m.TagList(),
		start:   make([]float64, m.Tags.Len()),
		trans:   make([][]float64, m.Tags.Len()),
		emitCol: make([]int, m.Tags.Len()),
	}
	unkRow, exists := m.Emissions.Morphemes.IndexOf(string(m.Unk))
	if !exists {
		return nil, &VocabularyError{"emission matrix has no row for " + string(m.Unk)}
	}
	d.unkRow = unkRow
	for t, tag := range d.tags {
		lp, exists := m.Transitions.LogProb(m.Boundary, tag)
		if !exists {
			return nil, &VocabularyError{"no transition " + string(m.Boundary) + " -> " + string(tag)}
		}
		d.start[t] = lp
		col, exists := m.Emissions.Tags.IndexOf(string(tag))
		if !exists {
			return nil, &VocabularyError{"emission matrix has no column for tag " + string(tag)}
		}
		d.emitCol[t] = col
		d.trans[t] = make([]float64, len(d.tags))
		for u, next := range d.tags {
			lp, exists := m.Transitions.LogProb(tag, next)
			if !exists {
				return nil, &VocabularyError{"no transition " + string(tag) + " -> " + string(next)}
			}
			d.trans[t][u] = lp
		}
	}
	return d, nil
}

func (d *Decoder) Model() *Model {
	return d.model
}

func (d *Decoder) emission(row []float64, t int) float64 {
	return row[d.emitCol[t]]
}

func (d *Decoder) emissionRow(morpheme nlp.Morpheme) []float64 {
	if i, exists := d.model.Emissions.Morphemes.IndexOf(string(morpheme)); exists {
		return d.model.Emissions.LogProbs[i]
	}
	return d.model.Emissions.LogProbs[d.unkRow]
}

// lattice holds the cumulative log probability and backpointer of every
// (position, tag) cell of one sentence.
type lattice struct {
	score [][]float64
	back  [][]int
}

func newLattice(n, numTags int) *lattice {
	l := &lattice{
		score: make([][]float64, n),
		back:  make([][]int, n),
	}
	scores := make([]float64, n*numTags)
	backs := make([]int, n*numTags)
	for i := 0; i < n; i++ {
		l.score[i] = scores[i*numTags : (i+1)*numTags]
		l.back[i] = backs[i*numTags : (i+1)*numTags]
	}
	return l
}

// Decode returns the highest scoring tag sequence for sent, one tag per
// morpheme. Morphemes outside the vocabulary are decoded as Unk.
func (d *Decoder) Decode(sent nlp.Sentence) (nlp.Tags, error) {
	tags, _, err := d.DecodeScore(sent)
	return tags, err
}

// DecodeScore is Decode also returning the log2 probability of the path.
func (d *Decoder) DecodeScore(sent nlp.Sentence) (nlp.Tags, float64, error) {
	n, numTags := len(sent), len(d.tags)
	if n == 0 {
		return nil, NegInf, ErrEmptySentence
	}
	l := newLattice(n, numTags)

	row := d.emissionRow(sent[0])
	for t := 0; t < numTags; t++ {
		l.score[0][t] = LogProduct(d.start[t], d.emission(row, t))
		l.back[0][t] = -1
	}
	if !anyViable(l.score[0]) {
		return nil, NegInf, &UnviablePathError{0, sent[0]}
	}

	candidates := make([]float64, numTags)
	for i := 1; i < n; i++ {
		row = d.emissionRow(sent[i])
		prev := l.score[i-1]
		for t := 0; t < numTags; t++ {
			for p := 0; p < numTags; p++ {
				candidates[p] = LogProduct(prev[p], d.trans[p][t])
			}
			best := floats.MaxIdx(candidates)
			l.score[i][t] = LogProduct(candidates[best], d.emission(row, t))
			l.back[i][t] = best
		}
		if !anyViable(l.score[i]) {
			return nil, NegInf, &UnviablePathError{i, sent[i]}
		}
	}

	last := floats.MaxIdx(l.score[n-1])
	retval := make(nlp.Tags, n)
	for i, t := n-1, last; i >= 0; i-- {
		retval[i] = d.tags[t]
		t = l.back[i][t]
	}
	return retval, l.score[n-1][last], nil
}

// Decode decodes sent with a decoder built for m.
func Decode(sent nlp.Sentence, m *Model) (nlp.Tags, error) {
	d, err := NewDecoder(m)
	if err != nil {
		return nil, err
	}
	return d.Decode(sent)
}

func anyViable(scores []float64) bool {
	for _, s := range scores {
		if IsViable(s) {
			return true
		}
	}
	return false
}

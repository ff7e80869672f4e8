package hmm

import (
	"fmt"

	nlp "yu-val-weiss/hmmtag/nlp/types"
	"yu-val-weiss/hmmtag/util"
)

type Options struct {
	// Morphemes seen fewer than UnkThreshold times become Unk.
	UnkThreshold int
	Unk          nlp.Morpheme
	Boundary     nlp.Tag
	EOS          nlp.Morpheme
}

func DefaultOptions() Options {
	return Options{
		UnkThreshold: 2,
		Unk:          nlp.UNK,
		Boundary:     nlp.BOUNDARY,
		EOS:          nlp.EOS,
	}
}

// Index is the vocabulary of a training corpus.
type Index struct {
	Options Options

	// Pairs holds the training pairs after UNK substitution, boundaries
	// included and the corpus closed by a boundary.
	Pairs []nlp.TaggedMorpheme

	// Tags are the output tags, boundary excluded.
	Tags *util.EnumSet
	// Sources are the tags seen as the left element of a bigram, boundary
	// included.
	Sources *util.EnumSet
	// Vocabulary holds the morphemes kept after UNK substitution plus Unk.
	Vocabulary *util.EnumSet

	MorphemeCounts map[nlp.Morpheme]int
	Replaced       int
	ClosedFinal    bool
}

// NewIndex builds the tag sets and vocabulary of the tagged pairs. Pairs
// tagged with the boundary tag mark sentence ends.
func NewIndex(pairs []nlp.TaggedMorpheme, opts Options) (*Index, error) {
	if opts.UnkThreshold < 1 {
		return nil, &VocabularyError{fmt.Sprintf("UNK threshold must be positive, got %d", opts.UnkThreshold)}
	}
	if len(pairs) == 0 {
		return nil, &VocabularyError{"empty training corpus"}
	}
	idx := &Index{
		Options:        opts,
		Pairs:          make([]nlp.TaggedMorpheme, 0, len(pairs)+1),
		MorphemeCounts: make(map[nlp.Morpheme]int),
	}
	for _, pair := range pairs {
		if pair.Tag != opts.Boundary {
			idx.MorphemeCounts[pair.Morpheme]++
		}
	}
	if len(idx.MorphemeCounts) == 0 {
		return nil, &VocabularyError{"training corpus holds no tagged morphemes"}
	}

	var (
		tags, sources, vocabulary []string
		prev                      = opts.Boundary
		replaced                  = make(map[nlp.Morpheme]bool)
	)
	for _, pair := range pairs {
		sources = append(sources, string(prev))
		prev = pair.Tag
		if pair.Tag == opts.Boundary {
			idx.Pairs = append(idx.Pairs, pair)
			continue
		}
		tags = append(tags, string(pair.Tag))
		if idx.MorphemeCounts[pair.Morpheme] < opts.UnkThreshold {
			replaced[pair.Morpheme] = true
			pair.Morpheme = opts.Unk
		}
		idx.Pairs = append(idx.Pairs, pair)
	}
	if prev != opts.Boundary {
		sources = append(sources, string(prev))
		idx.Pairs = append(idx.Pairs, nlp.TaggedMorpheme{Morpheme: opts.EOS, Tag: opts.Boundary})
		idx.ClosedFinal = true
	}
	for morpheme, count := range idx.MorphemeCounts {
		if count >= opts.UnkThreshold {
			vocabulary = append(vocabulary, string(morpheme))
		}
	}
	vocabulary = append(vocabulary, string(opts.Unk))
	idx.Replaced = len(replaced)
	idx.Tags = util.NewSortedEnumSet(tags)
	idx.Sources = util.NewSortedEnumSet(sources)
	idx.Vocabulary = util.NewSortedEnumSet(vocabulary)
	return idx, nil
}

// TransitionTargets are the columns of the transition matrix: the output
// tags and the boundary, which absorbs sentence ends.
func (idx *Index) TransitionTargets() []string {
	return append(idx.Tags.Values(), string(idx.Options.Boundary))
}

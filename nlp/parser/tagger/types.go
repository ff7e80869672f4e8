package tagger

import (
	"yu-val-weiss/hmmtag/alg/hmm"
	nlp "yu-val-weiss/hmmtag/nlp/types"
)

type SequenceTagger interface {
	Decode(nlp.Sentence) (nlp.Tags, error)
}

type BatchTagger interface {
	SequenceTagger
	DecodeAll(sents []nlp.Sentence, workers int, done func(*hmm.Decoded)) ([]*hmm.Decoded, error)
}

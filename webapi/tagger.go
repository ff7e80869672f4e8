package webapi

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/gonuts/commander"

	"yu-val-weiss/hmmtag/alg/hmm"
	"yu-val-weiss/hmmtag/app"
	"yu-val-weiss/hmmtag/nlp/format/raw"
	"yu-val-weiss/hmmtag/nlp/parser/tagger"
	nlp "yu-val-weiss/hmmtag/nlp/types"
)

var (
	hmmModel  *hmm.Model
	hmmTagger tagger.BatchTagger
	hmmLock   sync.RWMutex
)

var ErrNoModel = errors.New("no model loaded")

// TaggerInitialize loads (or trains) the model configured for the api
// command and makes it available to the handlers.
func TaggerInitialize(cmd *commander.Command, args []string) error {
	app.TagConfigOut()
	model, err := app.LoadModel()
	if err != nil {
		return err
	}
	return SetModel(model)
}

// SetModel replaces the served model. Requests in flight finish against the
// previous one.
func SetModel(model *hmm.Model) error {
	decoder, err := hmm.NewDecoder(model)
	if err != nil {
		return err
	}
	hmmLock.Lock()
	hmmModel, hmmTagger = model, decoder
	hmmLock.Unlock()
	log.Println("Serving model with", model.Tags.Len(), "tags and", model.Vocabulary.Len(), "morphemes")
	return nil
}

func current() (*hmm.Model, tagger.BatchTagger, error) {
	hmmLock.RLock()
	defer hmmLock.RUnlock()
	if hmmModel == nil {
		return nil, nil, ErrNoModel
	}
	return hmmModel, hmmTagger, nil
}

// TagSentences decodes one finite batch. Failed sentences carry their error
// in the result and do not fail the request.
func TagSentences(sents []nlp.Sentence) ([]*hmm.Decoded, error) {
	_, t, err := current()
	if err != nil {
		return nil, err
	}
	results, _ := t.DecodeAll(sents, app.Config.Workers, nil)
	return results, nil
}

// TagFormatted reads formatted sentences (one per line, morphemes separated
// by spaces) and returns one line of tags per sentence, blank for sentences
// that could not be tagged.
func TagFormatted(input string) (string, error) {
	sents, err := raw.Read(strings.NewReader(input))
	if err != nil {
		return "", err
	}
	results, err := TagSentences(sents)
	if err != nil {
		return "", err
	}
	tags := make([]nlp.Tags, len(results))
	for i, result := range results {
		tags[i] = result.Tags
	}
	buf := new(bytes.Buffer)
	if err := raw.WriteTags(buf, tags); err != nil {
		return "", err
	}
	return buf.String(), nil
}

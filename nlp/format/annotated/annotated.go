package annotated

// Package annotated writes gold words re-tagged with predictions. Each gold
// word is written on its own line as m/T+m/T; a predicted tag that differs
// from gold is marked m/**T**. Morphemes of sentences that could not be
// tagged are marked m/**?**. A footer reports the morpheme count and the
// accuracy.

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"yu-val-weiss/hmmtag/eval"
	"yu-val-weiss/hmmtag/nlp/format/taggedcorpus"
	nlp "yu-val-weiss/hmmtag/nlp/types"
)

const UNTAGGED = "?"

func mark(tag nlp.Tag) string {
	return "**" + string(tag) + "**"
}

// Word renders one gold word against the predicted tags of its morphemes; a
// nil predicted slice renders the word as untagged.
func Word(word taggedcorpus.Word, predicted nlp.Tags) string {
	units := make([]string, len(word.Analysis))
	for i, gold := range word.Analysis {
		switch {
		case predicted == nil:
			units[i] = string(gold.Morpheme) + "/" + mark(UNTAGGED)
		case predicted[i] == gold.Tag:
			units[i] = gold.String()
		default:
			units[i] = string(gold.Morpheme) + "/" + mark(predicted[i])
		}
	}
	return strings.Join(units, "+")
}

// Write renders gold sentences with the predicted tags of the same index.
// A predicted entry whose length differs from its gold sentence is written
// as untagged.
func Write(writer io.Writer, gold []taggedcorpus.Sentence, predicted []nlp.Tags, total *eval.Total) error {
	bw := bufio.NewWriter(writer)
	for i, sent := range gold {
		var tags nlp.Tags
		if i < len(predicted) && len(predicted[i]) == sent.Len() {
			tags = predicted[i]
		}
		offset := 0
		for _, word := range sent {
			var wordTags nlp.Tags
			if tags != nil {
				wordTags = tags[offset : offset+len(word.Analysis)]
			}
			offset += len(word.Analysis)
			bw.WriteString(Word(word, wordTags))
			bw.WriteByte('\n')
		}
	}
	if total != nil {
		fmt.Fprintf(bw, "\nTotal # of morphemes evaluated:\t%d\nAccuracy:\t%0.2f%%\n", total.Total, total.Accuracy())
	}
	return bw.Flush()
}

func WriteFile(filename string, gold []taggedcorpus.Sentence, predicted []nlp.Tags, total *eval.Total) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return Write(file, gold, predicted, total)
}

package taggedcorpus

// Package taggedcorpus reads morpheme/tag corpora.
// Each line holds one word: tab or space separated columns, the columns
// containing a '/' are analyses of the form m/T+m/T (a literal '+' morpheme
// is written +/T). A column holding the EOS marker ends the sentence where it
// stands; a blank line ends it too. Other columns (e.g. the surface form) are ignored.

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/errwrap"

	nlp "yu-val-weiss/hmmtag/nlp/types"
)

type ParseError struct {
	Line int
	Unit string
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s %q", e.Line, e.Msg, e.Unit)
}

type Word struct {
	Line     int
	Columns  []string
	Analysis nlp.TaggedSentence
}

type Sentence []Word

func (s Sentence) Tagged() nlp.TaggedSentence {
	var retval nlp.TaggedSentence
	for _, w := range s {
		retval = append(retval, w.Analysis...)
	}
	return retval
}

func (s Sentence) Len() int {
	var retval int
	for _, w := range s {
		retval += len(w.Analysis)
	}
	return retval
}

// SplitUnits splits an analysis column on '+' separators. A '+' directly
// followed by '/' is the morpheme '+'.
func SplitUnits(column string) []string {
	var (
		retval []string
		start  int
	)
	for i := 0; i < len(column); i++ {
		if column[i] != '+' || i == start {
			continue
		}
		retval = append(retval, column[start:i])
		start = i + 1
	}
	if start < len(column) {
		retval = append(retval, column[start:])
	}
	return retval
}

// ParseUnit parses m/T, splitting at the last '/'.
func ParseUnit(unit string) (nlp.TaggedMorpheme, bool) {
	sep := strings.LastIndexByte(unit, '/')
	if sep <= 0 || sep == len(unit)-1 {
		return nlp.TaggedMorpheme{}, false
	}
	return nlp.TaggedMorpheme{Morpheme: nlp.Morpheme(unit[:sep]), Tag: nlp.Tag(unit[sep+1:])}, true
}

func Read(reader io.Reader, eos string, limit int) ([]Sentence, error) {
	var (
		sentences []Sentence
		current   Sentence
		lineNum   int
	)
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	endSentence := func() {
		if len(current) > 0 {
			sentences = append(sentences, current)
			current = nil
		}
	}
	for scanner.Scan() {
		lineNum++
		columns := strings.Fields(scanner.Text())
		if len(columns) == 0 {
			endSentence()
			if limit > 0 && len(sentences) >= limit {
				return sentences, nil
			}
			continue
		}
		// an eos column ends the sentence mid-line; the analyses before it
		// belong to the ending sentence, those after it start the next one
		word := Word{Line: lineNum}
		addWord := func() {
			if len(word.Analysis) > 0 {
				current = append(current, word)
			}
			word = Word{Line: lineNum}
		}
		for _, column := range columns {
			if column == eos {
				addWord()
				endSentence()
				if limit > 0 && len(sentences) >= limit {
					return sentences, nil
				}
				continue
			}
			word.Columns = append(word.Columns, column)
			if !strings.Contains(column, "/") {
				continue
			}
			for _, unit := range SplitUnits(column) {
				pair, ok := ParseUnit(unit)
				if !ok {
					return nil, &ParseError{lineNum, unit, "malformed morpheme/tag pair"}
				}
				word.Analysis = append(word.Analysis, pair)
			}
		}
		addWord()
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	endSentence()
	return sentences, nil
}

func ReadFile(filename, eos string, limit int) ([]Sentence, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	sents, err := Read(file, eos, limit)
	if err != nil {
		return nil, errwrap.Wrapf(filename+": {{err}}", err)
	}
	return sents, nil
}

// Pairs flattens sentences into training pairs, each sentence followed by
// an eos/boundary pair.
func Pairs(sents []Sentence, eos nlp.Morpheme, boundary nlp.Tag) []nlp.TaggedMorpheme {
	var retval []nlp.TaggedMorpheme
	for _, sent := range sents {
		retval = append(retval, sent.Tagged()...)
		retval = append(retval, nlp.TaggedMorpheme{Morpheme: eos, Tag: boundary})
	}
	return retval
}

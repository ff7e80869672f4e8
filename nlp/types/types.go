package types

import "strings"

// Reserved symbols of the tagged morpheme corpora.
const (
	BOUNDARY = "<s>"
	EOS      = "^EOS"
	UNK      = "UNK"
)

type Morpheme string

type Tag string

type TaggedMorpheme struct {
	Morpheme Morpheme
	Tag      Tag
}

func (t TaggedMorpheme) String() string {
	return string(t.Morpheme) + "/" + string(t.Tag)
}

type Sentence []Morpheme

func (s Sentence) Strings() []string {
	retval := make([]string, len(s))
	for i, m := range s {
		retval[i] = string(m)
	}
	return retval
}

func (s Sentence) String() string {
	return strings.Join(s.Strings(), " ")
}

type Tags []Tag

func (t Tags) Strings() []string {
	retval := make([]string, len(t))
	for i, tag := range t {
		retval[i] = string(tag)
	}
	return retval
}

func (t Tags) String() string {
	return strings.Join(t.Strings(), " ")
}

type TaggedSentence []TaggedMorpheme

func (s TaggedSentence) Morphemes() Sentence {
	retval := make(Sentence, len(s))
	for i, m := range s {
		retval[i] = m.Morpheme
	}
	return retval
}

func (s TaggedSentence) Tags() Tags {
	retval := make(Tags, len(s))
	for i, m := range s {
		retval[i] = m.Tag
	}
	return retval
}

// NewSentence splits a formatted line of space separated morphemes.
func NewSentence(line string) Sentence {
	fields := strings.Fields(line)
	retval := make(Sentence, len(fields))
	for i, f := range fields {
		retval[i] = Morpheme(f)
	}
	return retval
}

// NewTags splits a line of space separated tags.
func NewTags(line string) Tags {
	fields := strings.Fields(line)
	retval := make(Tags, len(fields))
	for i, f := range fields {
		retval[i] = Tag(f)
	}
	return retval
}

func NewTagsFrom(values []string) Tags {
	retval := make(Tags, len(values))
	for i, v := range values {
		retval[i] = Tag(v)
	}
	return retval
}

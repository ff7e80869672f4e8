package raw

// Package raw reads and writes untagged morpheme input.
// Unformatted input holds one word per line with its morphemes joined by
// '+', a '+' opening a morpheme being the morpheme '+' itself; a line
// holding the EOS marker ends a sentence. Formatted files hold one sentence
// per line with space separated morphemes; decoder output uses the same
// layout for tags.

import (
	"bufio"
	"io"
	"os"
	"strings"

	nlp "yu-val-weiss/hmmtag/nlp/types"
)

// SplitWord splits one unformatted input line into morphemes. A '+' at the
// start of a morpheme is the morpheme '+' itself, so "1++1" is 1 + 1.
func SplitWord(line string) []nlp.Morpheme {
	var (
		retval []nlp.Morpheme
		start  int
	)
	for i := 0; i < len(line); i++ {
		if line[i] != '+' {
			continue
		}
		if i == start {
			retval = append(retval, "+")
			if i+1 < len(line) && line[i+1] == '+' {
				i++
			}
			start = i + 1
			continue
		}
		retval = append(retval, nlp.Morpheme(line[start:i]))
		start = i + 1
	}
	if start < len(line) {
		retval = append(retval, nlp.Morpheme(line[start:]))
	}
	return retval
}

func ReadUnformatted(reader io.Reader, eos string, limit int) ([]nlp.Sentence, error) {
	var (
		sentences []nlp.Sentence
		current   nlp.Sentence
	)
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if strings.Contains(line, eos) {
			if len(current) > 0 {
				sentences = append(sentences, current)
				current = nil
			}
			if limit > 0 && len(sentences) >= limit {
				return sentences, nil
			}
			continue
		}
		current = append(current, SplitWord(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(current) > 0 {
		sentences = append(sentences, current)
	}
	return sentences, nil
}

func ReadUnformattedFile(filename, eos string, limit int) ([]nlp.Sentence, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadUnformatted(file, eos, limit)
}

func readLines(reader io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

// Read reads formatted sentences. Blank lines are kept as empty sentences.
func Read(reader io.Reader) ([]nlp.Sentence, error) {
	lines, err := readLines(reader)
	if err != nil {
		return nil, err
	}
	sentences := make([]nlp.Sentence, len(lines))
	for i, line := range lines {
		sentences[i] = nlp.NewSentence(line)
	}
	return sentences, nil
}

func ReadFile(filename string) ([]nlp.Sentence, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Read(file)
}

// ReadTags reads decoder output, one sentence of tags per line.
func ReadTags(reader io.Reader) ([]nlp.Tags, error) {
	lines, err := readLines(reader)
	if err != nil {
		return nil, err
	}
	retval := make([]nlp.Tags, len(lines))
	for i, line := range lines {
		retval[i] = nlp.NewTags(line)
	}
	return retval, nil
}

func ReadTagsFile(filename string) ([]nlp.Tags, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadTags(file)
}

func Write(writer io.Writer, sents []nlp.Sentence) error {
	bw := bufio.NewWriter(writer)
	for _, sent := range sents {
		bw.WriteString(sent.String())
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func WriteFile(filename string, sents []nlp.Sentence) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return Write(file, sents)
}

// WriteTags writes one line per sentence; a nil entry (a sentence that could
// not be tagged) is written as a blank line.
func WriteTags(writer io.Writer, tags []nlp.Tags) error {
	bw := bufio.NewWriter(writer)
	for _, t := range tags {
		bw.WriteString(t.String())
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func WriteTagsFile(filename string, tags []nlp.Tags) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteTags(file, tags)
}

package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"yu-val-weiss/hmmtag/alg/hmm"
	"yu-val-weiss/hmmtag/eval"
	"yu-val-weiss/hmmtag/eval/history"
	"yu-val-weiss/hmmtag/nlp/format/raw"
	"yu-val-weiss/hmmtag/nlp/format/taggedcorpus"
	nlp "yu-val-weiss/hmmtag/nlp/types"
	"yu-val-weiss/hmmtag/util/conf"
)

const trainCorpus = `the/D
dog/N
runs/V
^EOS
the/D
cat/N
sleeps/V
^EOS
the/D
dog/N
sleeps/V
quickly/R
^EOS
the/D
cat/N
runs/V
^EOS
`

const testCorpus = `the
dog
sleeps
^EOS
the
zebra+cat
^EOS
`

const goldCorpus = `the	the/D
dog	dog/N
sleeps	sleeps/V
^EOS
the	the/D
zebra+cat	zebra/N+cat/N
^EOS
`

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err.Error())
	}
	return path
}

func TestPipeline(t *testing.T) {
	dir := t.TempDir()
	quiet = true
	cmd := PipelineCmd()
	for name, value := range map[string]string{
		"train":     writeFile(t, dir, "train.txt", trainCorpus),
		"test":      writeFile(t, dir, "test.txt", testCorpus),
		"gold":      writeFile(t, dir, "gold.txt", goldCorpus),
		"out":       filepath.Join(dir, "output.txt"),
		"formatted": filepath.Join(dir, "formatted.txt"),
		"tagged":    filepath.Join(dir, "tags.txt"),
		"m":         filepath.Join(dir, "model.gob"),
		"tmatrix":   filepath.Join(dir, "t_prob_matrix.txt"),
		"ematrix":   filepath.Join(dir, "e_prob_matrix.txt"),
		"history":   filepath.Join(dir, "runs.db"),
		"workers":   "2",
	} {
		if err := cmd.Flag.Set(name, value); err != nil {
			t.Fatal(err.Error())
		}
	}
	if err := Pipeline(cmd, nil); err != nil {
		t.Fatal(err.Error())
	}

	formatted, err := os.ReadFile(Config.Files.Formatted)
	if err != nil {
		t.Fatal(err.Error())
	}
	if string(formatted) != "the dog sleeps\nthe zebra cat\n" {
		t.Errorf("Unexpected formatted corpus %q", string(formatted))
	}

	tags, err := raw.ReadTagsFile(Config.Files.Tagged)
	if err != nil {
		t.Fatal(err.Error())
	}
	if len(tags) != 2 || tags[0].String() != "D N V" {
		t.Errorf("Unexpected tags %v", tags)
	}
	// zebra is unknown and UNK was only seen as R
	if tags[1].String() != "D R N" {
		t.Errorf("Expected D R N, got %s", tags[1])
	}

	output, err := os.ReadFile(Config.Files.Output)
	if err != nil {
		t.Fatal(err.Error())
	}
	if !strings.Contains(string(output), "zebra/**R**+cat/N\n") {
		t.Errorf("Expected zebra marked, got\n%s", string(output))
	}
	if !strings.HasSuffix(string(output), "Total # of morphemes evaluated:\t6\nAccuracy:\t83.33%\n") {
		t.Errorf("Unexpected footer in\n%s", string(output))
	}

	model, err := hmm.ReadModelFile(Config.Files.Model)
	if err != nil {
		t.Fatal(err.Error())
	}
	if err := model.Validate(); err != nil {
		t.Error(err.Error())
	}
	fromMatrices, err := ReadMatrices(Config.Files.Transition, Config.Files.Emission)
	if err != nil {
		t.Fatal(err.Error())
	}
	decoded, err := hmm.Decode(nlp.Sentence{"the", "cat", "runs"}, fromMatrices)
	if err != nil || decoded.String() != "D N V" {
		t.Errorf("Expected D N V from matrices, got %v (%v)", decoded, err)
	}

	store, err := history.Open(Config.Files.HistoryDB)
	if err != nil {
		t.Fatal(err.Error())
	}
	defer store.Close()
	runs, err := store.Runs()
	if err != nil {
		t.Fatal(err.Error())
	}
	if len(runs) != 1 || runs[0].Correct != 5 || runs[0].Morphemes != 6 || len(runs[0].Model) == 0 {
		t.Errorf("Unexpected runs %v", runs)
	}
}

func TestEvaluateFailuresAndCounts(t *testing.T) {
	sents, err := taggedcorpus.Read(strings.NewReader(goldCorpus), nlp.EOS, 0)
	if err != nil {
		t.Fatal(err.Error())
	}
	decoded := []*hmm.Decoded{
		{Index: 0, Tags: nlp.Tags{"D", "N", "V"}},
		{Index: 1, Err: &hmm.UnviablePathError{Position: 1, Morpheme: "zebra"}},
	}
	total, failures, err := Evaluate(sents, []nlp.Tags{decoded[0].Tags, nil}, decoded)
	if err != nil {
		t.Fatal(err.Error())
	}
	if total.Total != 6 || total.Correct != 3 {
		t.Errorf("Expected 3 of 6, got %d of %d", total.Correct, total.Total)
	}
	if len(failures) != 1 || failures[0].Kind != "unviable" || failures[0].Sentence != 1 {
		t.Errorf("Unexpected failures %v", failures)
	}

	total, failures, err = Evaluate(sents, []nlp.Tags{{"D", "N"}}, nil)
	var alignErr *eval.AlignmentError
	if !errors.As(err, &alignErr) {
		t.Fatalf("Expected alignment error, got %v", err)
	}
	if total.Total != 6 || total.Correct != 0 || len(failures) != 2 {
		t.Errorf("Unexpected total %d/%d with failures %v", total.Correct, total.Total, failures)
	}
	if failures[0].Kind != "alignment" || failures[1].Kind != "untagged" {
		t.Errorf("Unexpected failure kinds %v", failures)
	}
}

func TestLookup(t *testing.T) {
	pairs := []nlp.TaggedMorpheme{{Morpheme: "a", Tag: "N"}, {Morpheme: "a", Tag: "V"}, {Morpheme: nlp.EOS, Tag: nlp.BOUNDARY}}
	model, _, err := hmm.Train(pairs, hmm.DefaultOptions())
	if err != nil {
		t.Fatal(err.Error())
	}
	out, err := Lookup(model, []string{"tags"})
	if err != nil || out != "N V" {
		t.Errorf("Expected N V, got %s (%v)", out, err)
	}
	out, err = Lookup(model, []string{"transition", nlp.BOUNDARY, "N"})
	if err != nil || out != "-1.000000" {
		t.Errorf("Expected -1.000000, got %s (%v)", out, err)
	}
	out, err = Lookup(model, []string{"emission", "b", "N"})
	if err != nil || out != "-inf" {
		t.Errorf("Expected -inf, got %s (%v)", out, err)
	}
	if _, err = Lookup(model, []string{"transition", "X", "N"}); err == nil {
		t.Error("Expected error for unknown tag")
	}
	if _, err = Lookup(model, []string{"bogus"}); err == nil {
		t.Error("Expected error for unknown query")
	}
}

func TestFailureKind(t *testing.T) {
	kinds := map[string]error{
		"empty":      hmm.ErrEmptySentence,
		"vocabulary": &hmm.VocabularyError{Reason: "x"},
		"alignment":  &eval.AlignmentError{},
		"untagged":   errors.New("x"),
		"unviable":   &hmm.SentenceError{Index: 1, Err: &hmm.UnviablePathError{}},
	}
	for expected, err := range kinds {
		if kind := FailureKind(err); kind != expected {
			t.Errorf("Expected %s, got %s", expected, kind)
		}
	}
}

func TestWriteConf(t *testing.T) {
	saved := *Config
	defer func() { *Config = saved }()
	Config.UnkThreshold = 3
	Config.Files.Train = "train.txt"

	buf := new(bytes.Buffer)
	if err := WriteConf(buf); err != nil {
		t.Fatal(err.Error())
	}
	name := writeFile(t, t.TempDir(), "hmmtag.yaml", buf.String())
	back := conf.Default()
	if err := back.Merge(name); err != nil {
		t.Fatal(err.Error())
	}
	if back.UnkThreshold != 3 || back.Files.Train != "train.txt" {
		t.Errorf("Expected unk threshold 3 and train.txt, got %d and %s", back.UnkThreshold, back.Files.Train)
	}
	if back.Boundary != nlp.BOUNDARY {
		t.Errorf("Expected boundary %s, got %s", nlp.BOUNDARY, back.Boundary)
	}
}

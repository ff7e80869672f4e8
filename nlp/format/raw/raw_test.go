package raw

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	nlp "yu-val-weiss/hmmtag/nlp/types"
)

func TestSplitWord(t *testing.T) {
	if w := SplitWord("+"); !reflect.DeepEqual(w, []nlp.Morpheme{"+"}) {
		t.Errorf("Expected [+], got %v", w)
	}
	if w := SplitWord("가+았+다"); !reflect.DeepEqual(w, []nlp.Morpheme{"가", "았", "다"}) {
		t.Errorf("Expected [가 았 다], got %v", w)
	}
	if w := SplitWord("학교"); !reflect.DeepEqual(w, []nlp.Morpheme{"학교"}) {
		t.Errorf("Expected [학교], got %v", w)
	}
}

func TestSplitWordLiteralPlus(t *testing.T) {
	expected := []nlp.Morpheme{"1", "+", "1"}
	if w := SplitWord("1++1"); !reflect.DeepEqual(w, expected) {
		t.Errorf("Expected %v, got %v", expected, w)
	}
	if w := SplitWord("1+++1"); !reflect.DeepEqual(w, expected) {
		t.Errorf("Expected %v, got %v", expected, w)
	}
	if w := SplitWord("++1"); !reflect.DeepEqual(w, []nlp.Morpheme{"+", "1"}) {
		t.Errorf("Expected [+ 1], got %v", w)
	}
	if w := SplitWord("1++"); !reflect.DeepEqual(w, []nlp.Morpheme{"1", "+"}) {
		t.Errorf("Expected [1 +], got %v", w)
	}
}

func TestReadUnformatted(t *testing.T) {
	input := "나+는\n학교+에\n+\n^EOS\n^EOS\n갔다 \n"
	sents, err := ReadUnformatted(strings.NewReader(input), nlp.EOS, 0)
	if err != nil {
		t.Fatal(err.Error())
	}
	expected := []nlp.Sentence{{"나", "는", "학교", "에", "+"}, {"갔다"}}
	if !reflect.DeepEqual(sents, expected) {
		t.Errorf("Expected %v, got %v", expected, sents)
	}
}

func TestFormattedWriteRead(t *testing.T) {
	sents := []nlp.Sentence{{"나", "는"}, {}, {"+"}}
	buf := new(bytes.Buffer)
	if err := Write(buf, sents); err != nil {
		t.Fatal(err.Error())
	}
	if buf.String() != "나 는\n\n+\n" {
		t.Errorf("Unexpected output %q", buf.String())
	}
	back, err := Read(buf)
	if err != nil {
		t.Fatal(err.Error())
	}
	if len(back) != 3 || len(back[1]) != 0 || back[2][0] != "+" {
		t.Errorf("Expected %v, got %v", sents, back)
	}
}

func TestTagsKeepFailedLines(t *testing.T) {
	buf := new(bytes.Buffer)
	if err := WriteTags(buf, []nlp.Tags{{"NP", "JX"}, nil, {"SF"}}); err != nil {
		t.Fatal(err.Error())
	}
	tags, err := ReadTags(buf)
	if err != nil {
		t.Fatal(err.Error())
	}
	if len(tags) != 3 || len(tags[1]) != 0 || tags[0][1] != "JX" {
		t.Errorf("Unexpected tags %v", tags)
	}
}

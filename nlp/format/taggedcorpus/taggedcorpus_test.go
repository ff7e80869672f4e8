package taggedcorpus

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	nlp "yu-val-weiss/hmmtag/nlp/types"
)

const corpus = `나는	나/NP+는/JX
학교에	학교/NNG+에/JKB
갔다	가/VV+았/EP+다/EF
.	./SF
^EOS
1+1	1/SN++/SW+1/SN
^EOS
`

func TestSplitUnits(t *testing.T) {
	units := SplitUnits("1/SN++/SW+1/SN")
	expected := []string{"1/SN", "+/SW", "1/SN"}
	if !reflect.DeepEqual(units, expected) {
		t.Errorf("Expected %v, got %v", expected, units)
	}
	units = SplitUnits("+/SW")
	if len(units) != 1 || units[0] != "+/SW" {
		t.Errorf("Expected [+/SW], got %v", units)
	}
}

func TestParseUnit(t *testing.T) {
	pair, ok := ParseUnit("a/b/NNP")
	if !ok || pair.Morpheme != "a/b" || pair.Tag != "NNP" {
		t.Errorf("Expected a/b NNP, got %v (%v)", pair, ok)
	}
	for _, bad := range []string{"/N", "a/", "a"} {
		if _, ok := ParseUnit(bad); ok {
			t.Errorf("Expected %s to be rejected", bad)
		}
	}
}

func TestRead(t *testing.T) {
	sents, err := Read(strings.NewReader(corpus), nlp.EOS, 0)
	if err != nil {
		t.Fatal(err.Error())
	}
	if len(sents) != 2 {
		t.Fatalf("Expected 2 sentences, got %d", len(sents))
	}
	if len(sents[0]) != 4 {
		t.Errorf("Expected 4 words, got %d", len(sents[0]))
	}
	if sents[0].Len() != 8 {
		t.Errorf("Expected 8 morphemes, got %d", sents[0].Len())
	}
	tagged := sents[1].Tagged()
	if tagged[1].Morpheme != "+" || tagged[1].Tag != "SW" {
		t.Errorf("Expected +/SW, got %v", tagged[1])
	}
	if sents[0][2].Line != 3 {
		t.Errorf("Expected line 3, got %d", sents[0][2].Line)
	}
}

func TestReadLimitAndBlankLines(t *testing.T) {
	sents, err := Read(strings.NewReader("a/N\n\nb/V\n^EOS\n\nc/N\n"), nlp.EOS, 0)
	if err != nil {
		t.Fatal(err.Error())
	}
	if len(sents) != 3 {
		t.Errorf("Expected 3 sentences, got %d", len(sents))
	}
	sents, err = Read(strings.NewReader("a/N\n\nb/V\n^EOS\n\nc/N\n"), nlp.EOS, 2)
	if err != nil {
		t.Fatal(err.Error())
	}
	if len(sents) != 2 {
		t.Errorf("Expected 2 sentences, got %d", len(sents))
	}
}

func TestReadMalformed(t *testing.T) {
	_, err := Read(strings.NewReader("a/N\nb/V+c\n"), nlp.EOS, 0)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected parse error, got %v", err)
	}
	if parseErr.Line != 2 || parseErr.Unit != "c" {
		t.Errorf("Expected line 2 unit c, got %d %s", parseErr.Line, parseErr.Unit)
	}
}

func TestPairs(t *testing.T) {
	sents, err := Read(strings.NewReader("a/N\nb/V\n^EOS\n"), nlp.EOS, 0)
	if err != nil {
		t.Fatal(err.Error())
	}
	pairs := Pairs(sents, nlp.EOS, nlp.BOUNDARY)
	expected := []nlp.TaggedMorpheme{{Morpheme: "a", Tag: "N"}, {Morpheme: "b", Tag: "V"}, {Morpheme: nlp.EOS, Tag: nlp.BOUNDARY}}
	if !reflect.DeepEqual(pairs, expected) {
		t.Errorf("Expected %v, got %v", expected, pairs)
	}
}

func TestReadInlineEOS(t *testing.T) {
	sents, err := Read(strings.NewReader("a/N+b/V c/N ^EOS\nd/N e/V\n^EOS\n"), nlp.EOS, 0)
	if err != nil {
		t.Fatal(err.Error())
	}
	pairs := Pairs(sents, nlp.EOS, nlp.BOUNDARY)
	expected := []nlp.TaggedMorpheme{
		{Morpheme: "a", Tag: "N"}, {Morpheme: "b", Tag: "V"}, {Morpheme: "c", Tag: "N"}, {Morpheme: nlp.EOS, Tag: nlp.BOUNDARY},
		{Morpheme: "d", Tag: "N"}, {Morpheme: "e", Tag: "V"}, {Morpheme: nlp.EOS, Tag: nlp.BOUNDARY},
	}
	if !reflect.DeepEqual(pairs, expected) {
		t.Errorf("Expected %v, got %v", expected, pairs)
	}
}

func TestReadEOSMidLine(t *testing.T) {
	sents, err := Read(strings.NewReader("a/N ^EOS b/V\nc/N\n"), nlp.EOS, 0)
	if err != nil {
		t.Fatal(err.Error())
	}
	if len(sents) != 2 {
		t.Fatalf("Expected 2 sentences, got %d", len(sents))
	}
	if sents[0].Len() != 1 || sents[1].Len() != 2 {
		t.Errorf("Expected 1 and 2 morphemes, got %d and %d", sents[0].Len(), sents[1].Len())
	}
	if sents[1][0].Line != 1 || sents[1][1].Line != 2 {
		t.Errorf("Expected words from lines 1 and 2, got %d and %d", sents[1][0].Line, sents[1][1].Line)
	}
	sents, err = Read(strings.NewReader("a/N ^EOS b/V\nc/N\n"), nlp.EOS, 1)
	if err != nil {
		t.Fatal(err.Error())
	}
	if len(sents) != 1 {
		t.Errorf("Expected 1 sentence, got %d", len(sents))
	}
}

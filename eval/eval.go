package eval

import (
	"fmt"

	"golang.org/x/exp/slices"

	nlp "yu-val-weiss/hmmtag/nlp/types"
)

func Precision(truePositives, testPositives int) float64 {
	if testPositives == 0 {
		return 0
	}
	return float64(truePositives) / float64(testPositives)
}

func Recall(truePositives, conditionPositives int) float64 {
	if conditionPositives == 0 {
		return 0
	}
	return float64(truePositives) / float64(conditionPositives)
}

func F1(precision, recall float64) float64 {
	if precision+recall == 0 {
		return 0
	}
	return 2.0 * (precision * recall) / (precision + recall)
}

// Percent is 100 * correct / total, 0 for an empty total.
func Percent(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(correct) / float64(total)
}

// AlignmentError reports predicted and gold sequences of different lengths.
type AlignmentError struct {
	Sentence        int
	Predicted, Gold int
}

func (e *AlignmentError) Error() string {
	if e.Sentence < 0 {
		return fmt.Sprintf("alignment error: %d predicted vs %d gold", e.Predicted, e.Gold)
	}
	return fmt.Sprintf("alignment error in sentence %d: %d predicted vs %d gold", e.Sentence+1, e.Predicted, e.Gold)
}

type Error interface {
	String() string
	Class() string
}

type Errors []Error

func (ers Errors) ByType() map[string]int {
	retval := make(map[string]int)
	for _, e := range ers {
		retval[e.Class()]++
	}
	return retval
}

// Mismatch is a morpheme whose predicted tag differs from gold.
type Mismatch struct {
	Position        int
	Predicted, Gold nlp.Tag
}

func (m *Mismatch) String() string {
	return fmt.Sprintf("%d: %s (gold %s)", m.Position, m.Predicted, m.Gold)
}

func (m *Mismatch) Class() string {
	return string(m.Gold) + "->" + string(m.Predicted)
}

type Result struct {
	Correct, Total int
	Errors         Errors
	Failed         bool
	Predicted      nlp.Tags
	Gold           nlp.Tags
}

func (r *Result) Incorrect() int {
	return r.Total - r.Correct
}

func (r *Result) Accuracy() float64 {
	return Percent(r.Correct, r.Total)
}

// Compare scores predicted tags against gold tags morpheme by morpheme.
func Compare(predicted, gold nlp.Tags) (*Result, error) {
	if len(predicted) != len(gold) {
		return nil, &AlignmentError{-1, len(predicted), len(gold)}
	}
	r := &Result{Total: len(gold), Predicted: predicted, Gold: gold}
	for i, tag := range predicted {
		if tag == gold[i] {
			r.Correct++
		} else {
			r.Errors = append(r.Errors, &Mismatch{i, tag, gold[i]})
		}
	}
	return r, nil
}

// Score returns the agreement count, the number of morphemes and the
// accuracy percentage of predicted against gold.
func Score(predicted, gold nlp.Tags) (correct, total int, accuracy float64, err error) {
	r, err := Compare(predicted, gold)
	if err != nil {
		return 0, 0, 0, err
	}
	return r.Correct, r.Total, r.Accuracy(), nil
}

type TagCounts struct {
	TP, FP, FN int
}

func (c *TagCounts) Precision() float64 {
	return Precision(c.TP, c.TP+c.FP)
}

func (c *TagCounts) Recall() float64 {
	return Recall(c.TP, c.TP+c.FN)
}

func (c *TagCounts) F1() float64 {
	return F1(c.Precision(), c.Recall())
}

// Total accumulates sentence results over a corpus. Failed sentences count
// their morphemes as incorrect.
type Total struct {
	Result
	Results           []*Result
	ByTag             map[nlp.Tag]*TagCounts
	Exact, Population int
	Flagged           []int
}

func NewTotal(keepResults bool) *Total {
	t := &Total{ByTag: make(map[nlp.Tag]*TagCounts)}
	if keepResults {
		t.Results = make([]*Result, 0)
	}
	return t
}

func (t *Total) tag(tag nlp.Tag) *TagCounts {
	c, exists := t.ByTag[tag]
	if !exists {
		c = new(TagCounts)
		t.ByTag[tag] = c
	}
	return c
}

func (t *Total) Add(r *Result) {
	t.Correct += r.Correct
	t.Total += r.Total
	t.Errors = append(t.Errors, r.Errors...)
	if r.Failed {
		t.Flagged = append(t.Flagged, t.Population)
		for _, gold := range r.Gold {
			t.tag(gold).FN++
		}
	} else {
		if r.Incorrect() == 0 {
			t.Exact++
		}
		for i, tag := range r.Predicted {
			if tag == r.Gold[i] {
				t.tag(tag).TP++
			} else {
				t.tag(tag).FP++
				t.tag(r.Gold[i]).FN++
			}
		}
	}
	t.Population++
	if t.Results != nil {
		t.Results = append(t.Results, r)
	}
}

// AddFailed records a sentence that could not be decoded.
func (t *Total) AddFailed(gold nlp.Tags) {
	t.Add(&Result{Total: len(gold), Failed: true, Gold: gold})
}

// AddSentence compares one sentence and adds it. A misaligned sentence is
// flagged as failed and its AlignmentError returned.
func (t *Total) AddSentence(predicted, gold nlp.Tags) error {
	r, err := Compare(predicted, gold)
	if err != nil {
		err.(*AlignmentError).Sentence = t.Population
		t.AddFailed(gold)
		return err
	}
	t.Add(r)
	return nil
}

func (t *Total) ExactMatch() float64 {
	return Percent(t.Exact, t.Population)
}

// Tags returns the tags seen in predictions or gold, sorted.
func (t *Total) Tags() nlp.Tags {
	retval := make(nlp.Tags, 0, len(t.ByTag))
	for tag := range t.ByTag {
		retval = append(retval, tag)
	}
	slices.Sort(retval)
	return retval
}

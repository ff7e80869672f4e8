package hmm

import (
	"runtime"
	"sync"

	"github.com/hashicorp/go-multierror"

	nlp "yu-val-weiss/hmmtag/nlp/types"
)

// Decoded is the outcome of decoding one sentence of a batch. Tags is nil
// when Err is set.
type Decoded struct {
	Index    int
	Sentence nlp.Sentence
	Tags     nlp.Tags
	LogProb  float64
	Err      error
}

func (d *Decoded) Failed() bool {
	return d.Err != nil
}

// DecodeAll decodes sentences on up to workers goroutines (all CPUs when
// workers < 1). Results keep the input order. A failed sentence does not
// stop the batch; failures are returned together as a *multierror.Error of
// *SentenceError. done, if given, is called once per finished sentence from
// the calling goroutine.
func (d *Decoder) DecodeAll(sents []nlp.Sentence, workers int, done func(*Decoded)) ([]*Decoded, error) {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > len(sents) {
		workers = len(sents)
	}
	results := make([]*Decoded, len(sents))
	jobs := make(chan int)
	finished := make(chan *Decoded)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				result := &Decoded{Index: i, Sentence: sents[i]}
				result.Tags, result.LogProb, result.Err = d.DecodeScore(sents[i])
				finished <- result
			}
		}()
	}
	go func() {
		for i := range sents {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
		close(finished)
	}()

	for result := range finished {
		results[result.Index] = result
		if done != nil {
			done(result)
		}
	}

	var errs *multierror.Error
	for _, result := range results {
		if result.Err != nil {
			errs = multierror.Append(errs, &SentenceError{result.Index, result.Err})
		}
	}
	return results, errs.ErrorOrNil()
}

package app

import (
	"errors"
	"flag"
	"log"

	"github.com/gonuts/commander"

	"yu-val-weiss/hmmtag/alg/hmm"
	"yu-val-weiss/hmmtag/eval"
	"yu-val-weiss/hmmtag/eval/history"
	"yu-val-weiss/hmmtag/nlp/format/annotated"
	"yu-val-weiss/hmmtag/nlp/format/raw"
	"yu-val-weiss/hmmtag/nlp/format/taggedcorpus"
	nlp "yu-val-weiss/hmmtag/nlp/types"
	"yu-val-weiss/hmmtag/util"
)

var perTag bool

func EvalConfigOut() {
	log.Println("Configuration")
	log.Printf("Gold file:\t\t%s", Config.Files.Gold)
	if len(Config.Files.Tagged) > 0 {
		log.Printf("Tagged file:\t\t%s", Config.Files.Tagged)
	}
	log.Printf("Out Annotated:\t%s", Config.Files.Output)
	if len(Config.Files.HistoryDB) > 0 {
		log.Printf("History DB:\t\t%s", Config.Files.HistoryDB)
	}
	log.Println()
}

// FailureKind names the class of a decoding failure.
func FailureKind(err error) string {
	var (
		unviable *hmm.UnviablePathError
		vocab    *hmm.VocabularyError
		align    *eval.AlignmentError
	)
	switch {
	case errors.As(err, &unviable):
		return "unviable"
	case errors.Is(err, hmm.ErrEmptySentence):
		return "empty"
	case errors.As(err, &vocab):
		return "vocabulary"
	case errors.As(err, &align):
		return "alignment"
	default:
		return "untagged"
	}
}

// Evaluate scores predicted tags against the gold sentence of the same
// index. decoded, when given, supplies the reason of failed sentences.
// A sentence count mismatch is scored as far as both sides go, the missing
// gold sentences counted as failed, and reported as an AlignmentError.
func Evaluate(gold []taggedcorpus.Sentence, predicted []nlp.Tags, decoded []*hmm.Decoded) (*eval.Total, []history.Failure, error) {
	var (
		total    = eval.NewTotal(false)
		failures []history.Failure
		countErr error
	)
	if len(gold) != len(predicted) {
		countErr = &eval.AlignmentError{Sentence: -1, Predicted: len(predicted), Gold: len(gold)}
		log.Println("Sentence count mismatch:", countErr)
	}
	for i, sent := range gold {
		goldTags := sent.Tagged().Tags()
		if i >= len(predicted) || len(predicted[i]) == 0 {
			var reason error = errors.New("sentence was not tagged")
			if i < len(decoded) && decoded[i] != nil && decoded[i].Err != nil {
				reason = decoded[i].Err
			}
			total.AddFailed(goldTags)
			failures = append(failures, history.Failure{Sentence: i, Kind: FailureKind(reason), Message: reason.Error()})
			continue
		}
		if err := total.AddSentence(predicted[i], goldTags); err != nil {
			log.Println(err)
			failures = append(failures, history.Failure{Sentence: i, Kind: FailureKind(err), Message: err.Error()})
		}
	}
	return total, failures, countErr
}

func ReportTotal(total *eval.Total) {
	log.Println("Total # of morphemes evaluated:", total.Total)
	log.Printf("Accuracy:\t%0.2f%%", total.Accuracy())
	log.Printf("Exact match:\t%0.2f%% of %d sentences", total.ExactMatch(), total.Population)
	if len(total.Flagged) > 0 {
		log.Println("Flagged sentences:", len(total.Flagged))
	}
	if !perTag {
		return
	}
	log.Println("Tag\tPrecision\tRecall\tF1")
	for _, tag := range total.Tags() {
		c := total.ByTag[tag]
		log.Printf("%s\t%0.4f\t%0.4f\t%0.4f", tag, c.Precision(), c.Recall(), c.F1())
	}
}

// RecordRun appends the evaluation to the history database when configured.
func RecordRun(total *eval.Total, failures []history.Failure) error {
	if len(Config.Files.HistoryDB) == 0 {
		return nil
	}
	store, err := history.Open(Config.Files.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()
	run := &history.Run{
		Morphemes: total.Total,
		Correct:   total.Correct,
		Accuracy:  total.Accuracy(),
		Failures:  failures,
	}
	if len(Config.Files.Model) > 0 && util.VerifyExists(Config.Files.Model) {
		if run.Model, err = util.MD5File(Config.Files.Model); err != nil {
			return err
		}
	}
	if err := store.Record(run); err != nil {
		return err
	}
	log.Println("Recorded run", run.ID, "in", Config.Files.HistoryDB)
	return nil
}

func EvaluateAndWrite(gold []taggedcorpus.Sentence, predicted []nlp.Tags, decoded []*hmm.Decoded) error {
	total, failures, countErr := Evaluate(gold, predicted, decoded)
	if len(Config.Files.Output) > 0 {
		if err := annotated.WriteFile(Config.Files.Output, gold, predicted, total); err != nil {
			return err
		}
		log.Println("Wrote annotated output", Config.Files.Output)
	}
	ReportTotal(total)
	if err := RecordRun(total, failures); err != nil {
		return err
	}
	return countErr
}

func Eval(cmd *commander.Command, args []string) error {
	VerifyFlags(cmd, []string{"gold", "tagged"})
	EvalConfigOut()

	gold, err := taggedcorpus.ReadFile(Config.Files.Gold, Config.EOS, limit)
	if err != nil {
		return err
	}
	predicted, err := raw.ReadTagsFile(Config.Files.Tagged)
	if err != nil {
		return err
	}
	log.Println("Read", len(gold), "gold and", len(predicted), "tagged sentences")
	return EvaluateAndWrite(gold, predicted, nil)
}

func EvalCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Eval,
		UsageLine: "eval <file options> [arguments]",
		Short:     "score tagger output against a gold tagged corpus",
		Long: `
score tagger output against a gold tagged corpus and write annotated output

	$ ./hmmtag eval -gold <gold file> -tagged <tags file> [-out <annotated file>] [-history <db>] [options]

`,
		Flag: *flag.NewFlagSet("eval", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&Config.Files.Gold, "gold", "", "Gold tagged corpus")
	cmd.Flag.StringVar(&Config.Files.Tagged, "tagged", "", "Tagger output, one sentence per line")
	cmd.Flag.StringVar(&Config.Files.Output, "out", "", "Annotated output file")
	cmd.Flag.StringVar(&Config.Files.HistoryDB, "history", "", "SQLite database recording evaluation runs")
	cmd.Flag.StringVar(&Config.Files.Model, "m", "", "Model file evaluated (recorded in history)")
	cmd.Flag.StringVar(&Config.EOS, "eos", Config.EOS, "End of sentence marker")
	cmd.Flag.BoolVar(&perTag, "tags", false, "Report precision/recall per tag")
	cmd.Flag.IntVar(&limit, "limit", 0, "limit gold set")
	return cmd
}

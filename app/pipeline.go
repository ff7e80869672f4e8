package app

import (
	"flag"
	"log"

	"github.com/gonuts/commander"

	"yu-val-weiss/hmmtag/alg/hmm"
	"yu-val-weiss/hmmtag/nlp/format/raw"
	"yu-val-weiss/hmmtag/nlp/format/taggedcorpus"
)

func PipelineConfigOut() {
	TrainConfigOut()
	log.Printf("Test file:\t\t%s", Config.Files.Test)
	log.Printf("Gold file:\t\t%s", Config.Files.Gold)
	if len(Config.Files.Formatted) > 0 {
		log.Printf("Out Formatted:\t%s", Config.Files.Formatted)
	}
	if len(Config.Files.Tagged) > 0 {
		log.Printf("Out Tags:\t\t%s", Config.Files.Tagged)
	}
	log.Printf("Out Annotated:\t%s", Config.Files.Output)
	log.Printf("Workers:\t\t%d", Config.Workers)
	log.Println()
}

// Pipeline trains on the tagged corpus, tags the test corpus and scores it
// against gold in one process.
func Pipeline(cmd *commander.Command, args []string) error {
	VerifyFlags(cmd, []string{"train", "test", "gold", "out"})
	PipelineConfigOut()

	model, err := TrainModel()
	if err != nil {
		return err
	}
	if err := WriteMatrices(model); err != nil {
		return err
	}
	if len(Config.Files.Model) > 0 {
		if err := hmm.WriteModelFile(Config.Files.Model, model); err != nil {
			return err
		}
		log.Println("Wrote model", Config.Files.Model)
	}
	decoder, err := hmm.NewDecoder(model)
	if err != nil {
		return err
	}

	sents, err := ReadTestSentences()
	if err != nil {
		return err
	}
	decoded, tags := DecodeSentences(decoder, sents)
	if len(Config.Files.Tagged) > 0 {
		if err := raw.WriteTagsFile(Config.Files.Tagged, tags); err != nil {
			return err
		}
		log.Println("Wrote tags", Config.Files.Tagged)
	}

	gold, err := taggedcorpus.ReadFile(Config.Files.Gold, Config.EOS, limit)
	if err != nil {
		return err
	}
	return EvaluateAndWrite(gold, tags, decoded)
}

func PipelineCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Pipeline,
		UsageLine: "pipeline <file options> [arguments]",
		Short:     "train, tag and evaluate in one run",
		Long: `
train on a tagged corpus, tag a test corpus and score it against gold

	$ ./hmmtag pipeline -train <tagged file> -test <test file> -gold <gold file> -out <annotated file> [options]

`,
		Flag: *flag.NewFlagSet("pipeline", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&Config.Files.Train, "train", "", "Tagged training corpus")
	cmd.Flag.StringVar(&Config.Files.Test, "test", "", "Test corpus, one word per line")
	cmd.Flag.StringVar(&Config.Files.Gold, "gold", "", "Gold tagged test corpus")
	cmd.Flag.StringVar(&Config.Files.Output, "out", "", "Annotated output file")
	cmd.Flag.StringVar(&Config.Files.Formatted, "formatted", "", "Output formatted test corpus")
	cmd.Flag.StringVar(&Config.Files.Tagged, "tagged", "", "Output tags, one sentence per line")
	cmd.Flag.StringVar(&Config.Files.Model, "m", "", "Output model file")
	cmd.Flag.StringVar(&Config.Files.Transition, "tmatrix", Config.Files.Transition, "Output transition matrix")
	cmd.Flag.StringVar(&Config.Files.Emission, "ematrix", Config.Files.Emission, "Output emission matrix")
	cmd.Flag.StringVar(&Config.Files.HistoryDB, "history", "", "SQLite database recording evaluation runs")
	cmd.Flag.IntVar(&Config.Workers, "workers", 0, "Concurrent decoders; 0 = all CPUs")
	cmd.Flag.BoolVar(&perTag, "tags", false, "Report precision/recall per tag")
	cmd.Flag.IntVar(&trainLimit, "trainlimit", 0, "limit training set")
	cmd.Flag.IntVar(&limit, "limit", 0, "limit test and gold sets")
	HMMFlags(cmd)
	return cmd
}

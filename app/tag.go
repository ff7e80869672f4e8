package app

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/gonuts/commander"
	"github.com/hashicorp/go-multierror"
	"github.com/schollz/progressbar"

	"yu-val-weiss/hmmtag/alg/hmm"
	"yu-val-weiss/hmmtag/nlp/format/raw"
	"yu-val-weiss/hmmtag/nlp/parser/tagger"
	nlp "yu-val-weiss/hmmtag/nlp/types"
	"yu-val-weiss/hmmtag/util"
)

func TagConfigOut() {
	log.Println("Configuration")
	log.Printf("Workers:\t\t%d", Config.Workers)
	log.Printf("UNK Symbol:\t\t%s", Config.Unk)
	log.Println()
	if len(Config.Files.Model) > 0 {
		log.Printf("Model:\t\t%s", Config.Files.Model)
	} else {
		log.Printf("Train file:\t\t%s", Config.Files.Train)
	}
	if len(Config.Files.Test) > 0 {
		log.Printf("Test file:\t\t%s", Config.Files.Test)
	}
	if len(Config.Files.Formatted) > 0 {
		log.Printf("Formatted file:\t%s", Config.Files.Formatted)
	}
	log.Printf("Out Tags:\t\t%s", Config.Files.Tagged)
	log.Println()
}

// LoadModel reads the model file, or trains a model when only a training
// corpus is configured.
func LoadModel() (*hmm.Model, error) {
	if len(Config.Files.Model) == 0 {
		if len(Config.Files.Train) == 0 {
			return nil, errors.New("no model or training corpus given")
		}
		return TrainModel()
	}
	location, found := util.LocateFile(Config.Files.Model, DEFAULT_MODEL_DIRS)
	if !found {
		return nil, fmt.Errorf("model %s not found", Config.Files.Model)
	}
	Config.Files.Model = location
	log.Println("Found model file", location, " ... loading model")
	model, err := hmm.ReadModelFile(location)
	if err != nil {
		return nil, err
	}
	log.Println("Loaded model")
	return model, nil
}

// ReadTestSentences reads the unformatted test corpus, writing its formatted
// form when configured, or reads an already formatted file.
func ReadTestSentences() ([]nlp.Sentence, error) {
	if len(Config.Files.Test) == 0 {
		log.Println("Reading formatted input", Config.Files.Formatted)
		return raw.ReadFile(Config.Files.Formatted)
	}
	log.Println("Reading test corpus", Config.Files.Test)
	sents, err := raw.ReadUnformattedFile(Config.Files.Test, Config.EOS, limit)
	if err != nil {
		return nil, err
	}
	if len(Config.Files.Formatted) > 0 {
		if err := raw.WriteFile(Config.Files.Formatted, sents); err != nil {
			return nil, err
		}
		log.Println("Wrote formatted test corpus", Config.Files.Formatted)
	}
	return sents, nil
}

// DecodeSentences tags every sentence. Sentences that cannot be tagged get a
// nil entry and are logged; they do not stop the batch.
func DecodeSentences(decoder tagger.BatchTagger, sents []nlp.Sentence) ([]*hmm.Decoded, []nlp.Tags) {
	var done func(*hmm.Decoded)
	if !quiet && len(sents) > 0 {
		bar := progressbar.New(len(sents))
		done = func(*hmm.Decoded) { bar.Add(1) }
	}
	log.Println("Decoding", len(sents), "sentences")
	results, err := decoder.DecodeAll(sents, Config.Workers, done)
	if !quiet {
		log.Println()
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		log.Println("Failed tagging", len(merr.Errors), "of", len(sents), "sentences")
		for _, e := range merr.Errors {
			log.Println("\t", e)
		}
	}
	tags := make([]nlp.Tags, len(results))
	for i, result := range results {
		tags[i] = result.Tags
	}
	return results, tags
}

func Tag(cmd *commander.Command, args []string) error {
	if len(Config.Files.Test) == 0 {
		VerifyFlags(cmd, []string{"in", "out"})
	} else {
		VerifyFlags(cmd, []string{"test", "out"})
	}
	TagConfigOut()

	model, err := LoadModel()
	if err != nil {
		return err
	}
	decoder, err := hmm.NewDecoder(model)
	if err != nil {
		return err
	}
	sents, err := ReadTestSentences()
	if err != nil {
		return err
	}
	_, tags := DecodeSentences(decoder, sents)
	if err := raw.WriteTagsFile(Config.Files.Tagged, tags); err != nil {
		return err
	}
	log.Println("Wrote", len(tags), "tagged sentences to", Config.Files.Tagged)
	return nil
}

func TagCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Tag,
		UsageLine: "tag <file options> [arguments]",
		Short:     "tag morpheme sequences with a trained HMM (viterbi)",
		Long: `
tag morpheme sequences with a trained HMM using viterbi decoding

	$ ./hmmtag tag -m <model file> -test <test file> -out <output file> [options]
	$ ./hmmtag tag -train <tagged file> -in <formatted file> -out <output file> [options]

`,
		Flag: *flag.NewFlagSet("tag", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&Config.Files.Model, "m", "", "Model file")
	cmd.Flag.StringVar(&Config.Files.Train, "train", "", "Tagged training corpus (when no model is given)")
	cmd.Flag.StringVar(&Config.Files.Test, "test", "", "Test corpus, one word per line")
	cmd.Flag.StringVar(&Config.Files.Formatted, "in", "", "Formatted input (with -test: formatted output)")
	cmd.Flag.StringVar(&Config.Files.Tagged, "out", "", "Output tags, one sentence per line")
	cmd.Flag.IntVar(&Config.Workers, "workers", 0, "Concurrent decoders; 0 = all CPUs")
	cmd.Flag.IntVar(&limit, "limit", 0, "limit test set")
	HMMFlags(cmd)
	return cmd
}

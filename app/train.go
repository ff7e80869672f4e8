package app

import (
	"flag"
	"fmt"
	"log"

	"github.com/gonuts/commander"

	"yu-val-weiss/hmmtag/alg/hmm"
	"yu-val-weiss/hmmtag/nlp/format/matrix"
	"yu-val-weiss/hmmtag/nlp/format/taggedcorpus"
	nlp "yu-val-weiss/hmmtag/nlp/types"
)

func TrainConfigOut() {
	log.Println("Configuration")
	log.Printf("UNK Threshold:\t%d", Config.UnkThreshold)
	log.Printf("UNK Symbol:\t\t%s", Config.Unk)
	log.Printf("Boundary Tag:\t%s", Config.Boundary)
	log.Printf("EOS Marker:\t\t%s", Config.EOS)
	log.Println()
	log.Printf("Train file:\t\t%s", Config.Files.Train)
	if len(Config.Files.Model) > 0 {
		log.Printf("Out Model:\t\t%s", Config.Files.Model)
	}
	log.Printf("Out Transitions:\t%s", Config.Files.Transition)
	log.Printf("Out Emissions:\t%s", Config.Files.Emission)
	log.Println()
}

// TrainModel reads the training corpus and estimates a model from it.
func TrainModel() (*hmm.Model, error) {
	log.Println("Reading training corpus", Config.Files.Train)
	sents, err := taggedcorpus.ReadFile(Config.Files.Train, Config.EOS, trainLimit)
	if err != nil {
		return nil, err
	}
	opts := HMMOptions()
	pairs := taggedcorpus.Pairs(sents, opts.EOS, opts.Boundary)
	log.Println("Read", len(sents), "sentences,", len(pairs), "pairs")

	model, idx, err := hmm.Train(pairs, opts)
	if err != nil {
		return nil, err
	}
	log.Println("Tags:", idx.Tags.Len(), "Bigram sources (V_t):", idx.Sources.Len())
	log.Println("Vocabulary:", idx.Vocabulary.Len(), "morphemes;", idx.Replaced, "replaced by", opts.Unk)
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("trained model is invalid: %v", err)
	}
	return model, nil
}

func WriteMatrices(model *hmm.Model) error {
	if len(Config.Files.Transition) > 0 {
		if err := matrix.WriteFile(Config.Files.Transition, matrix.FromTransitions(model.Transitions)); err != nil {
			return err
		}
		log.Println("Wrote transition matrix", Config.Files.Transition)
	}
	if len(Config.Files.Emission) > 0 {
		if err := matrix.WriteFile(Config.Files.Emission, matrix.FromEmissions(model.Emissions)); err != nil {
			return err
		}
		log.Println("Wrote emission matrix", Config.Files.Emission)
	}
	return nil
}

// ReadMatrices rebuilds a model from matrix dumps.
func ReadMatrices(transitionFile, emissionFile string) (*hmm.Model, error) {
	transitions, err := matrix.ReadFile(transitionFile)
	if err != nil {
		return nil, err
	}
	emissions, err := matrix.ReadFile(emissionFile)
	if err != nil {
		return nil, err
	}
	m := &hmm.Model{
		Transitions: transitions.Transitions(),
		Emissions:   emissions.Emissions(),
		Boundary:    nlp.Tag(Config.Boundary),
		Unk:         nlp.Morpheme(Config.Unk),
	}
	m.Tags = m.Emissions.Tags
	m.Vocabulary = m.Emissions.Morphemes
	return m, nil
}

func Train(cmd *commander.Command, args []string) error {
	VerifyFlags(cmd, []string{"train"})
	TrainConfigOut()

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
	return nil
}

func TrainCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Train,
		UsageLine: "train <file options> [arguments]",
		Short:     "estimate a bigram HMM from a tagged morpheme corpus",
		Long: `
estimate transition and emission probabilities from a tagged morpheme corpus

	$ ./hmmtag train -train <tagged file> [-m <model file>] [-tmatrix <file>] [-ematrix <file>] [options]

`,
		Flag: *flag.NewFlagSet("train", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&Config.Files.Train, "train", "", "Tagged training corpus")
	cmd.Flag.StringVar(&Config.Files.Model, "m", "", "Output model file")
	cmd.Flag.StringVar(&Config.Files.Transition, "tmatrix", Config.Files.Transition, "Output transition matrix")
	cmd.Flag.StringVar(&Config.Files.Emission, "ematrix", Config.Files.Emission, "Output emission matrix")
	cmd.Flag.IntVar(&trainLimit, "limit", 0, "limit training set")
	HMMFlags(cmd)
	return cmd
}

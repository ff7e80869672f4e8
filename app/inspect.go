package app

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/gonuts/commander"

	"yu-val-weiss/hmmtag/alg/hmm"
	"yu-val-weiss/hmmtag/nlp/format/matrix"
	nlp "yu-val-weiss/hmmtag/nlp/types"
)

// Lookup answers one inspect query against model.
func Lookup(model *hmm.Model, args []string) (string, error) {
	if len(args) == 0 {
		return fmt.Sprintf("tags: %d\nvocabulary: %d\ntransition sources (V_t): %d\nboundary: %s\nunk: %s",
			model.Tags.Len(), model.Vocabulary.Len(), model.Transitions.From.Len(), model.Boundary, model.Unk), nil
	}
	switch args[0] {
	case "tags":
		return strings.Join(model.Tags.Values(), " "), nil
	case "vocab":
		return strings.Join(model.Vocabulary.Values(), "\n"), nil
	case "transition":
		if len(args) != 3 {
			return "", fmt.Errorf("usage: transition <prev tag> <tag>")
		}
		lp, exists := model.Transitions.LogProb(nlp.Tag(args[1]), nlp.Tag(args[2]))
		if !exists {
			return "", fmt.Errorf("no transition %s -> %s", args[1], args[2])
		}
		return matrix.FormatValue(lp), nil
	case "emission":
		if len(args) != 3 {
			return "", fmt.Errorf("usage: emission <morpheme> <tag>")
		}
		morpheme := model.Known(nlp.Sentence{nlp.Morpheme(args[1])})[0]
		lp, exists := model.Emissions.LogProb(morpheme, nlp.Tag(args[2]))
		if !exists {
			return "", fmt.Errorf("no emission %s/%s", morpheme, args[2])
		}
		return matrix.FormatValue(lp), nil
	case "decode":
		tags, err := hmm.Decode(nlp.NewSentence(strings.Join(args[1:], " ")), model)
		if err != nil {
			return "", err
		}
		return tags.String(), nil
	}
	return "", fmt.Errorf("unknown query %s", args[0])
}

// WriteConf writes the effective configuration, the configuration file and
// the command line flags merged.
func WriteConf(writer io.Writer) error {
	return Config.Write(writer)
}

func Inspect(cmd *commander.Command, args []string) error {
	if len(args) > 0 && args[0] == "conf" {
		return WriteConf(os.Stdout)
	}
	var (
		model *hmm.Model
		err   error
	)
	if len(Config.Files.Model) == 0 && len(Config.Files.Train) == 0 {
		log.Println("Reading matrices", Config.Files.Transition, Config.Files.Emission)
		model, err = ReadMatrices(Config.Files.Transition, Config.Files.Emission)
	} else {
		model, err = LoadModel()
	}
	if err != nil {
		return err
	}
	out, err := Lookup(model, args)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func InspectCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Inspect,
		UsageLine: "inspect [options] [conf|tags|vocab|transition <prev> <tag>|emission <morpheme> <tag>|decode <morphemes>]",
		Short:     "query a trained model",
		Long: `
query a trained model, from a model file or from matrix dumps

	$ ./hmmtag inspect -conf hmmtag.yaml -unk 3 conf
	$ ./hmmtag inspect -m <model file> transition '<s>' NNG
	$ ./hmmtag inspect -tmatrix t_prob_matrix.txt -ematrix e_prob_matrix.txt emission 학교 NNG

`,
		Flag: *flag.NewFlagSet("inspect", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&Config.Files.Model, "m", "", "Model file")
	cmd.Flag.StringVar(&Config.Files.Train, "train", "", "Tagged training corpus (when no model is given)")
	cmd.Flag.StringVar(&Config.Files.Transition, "tmatrix", Config.Files.Transition, "Transition matrix")
	cmd.Flag.StringVar(&Config.Files.Emission, "ematrix", Config.Files.Emission, "Emission matrix")
	HMMFlags(cmd)
	return cmd
}

package app

import (
	"flag"
	"log"
	"os"
	"runtime"

	"github.com/gonuts/commander"

	"yu-val-weiss/hmmtag/alg/hmm"
	nlp "yu-val-weiss/hmmtag/nlp/types"
	"yu-val-weiss/hmmtag/util"
	"yu-val-weiss/hmmtag/util/conf"
)

const (
	NUM_CPUS_FLAG     = "cpus"
	DEFAULT_CONF_FILE = "hmmtag.yaml"
)

var (
	DEFAULT_CONF_DIRS  = []string{"conf", "/etc/hmmtag"}
	DEFAULT_MODEL_DIRS = []string{"data", "."}

	// processing options
	CPUs       int
	limit      int
	trainLimit int
	quiet      bool

	confFile string
	Config   = conf.Default()
)

func HMMOptions() hmm.Options {
	return hmm.Options{
		UnkThreshold: Config.UnkThreshold,
		Unk:          nlp.Morpheme(Config.Unk),
		Boundary:     nlp.Tag(Config.Boundary),
		EOS:          nlp.Morpheme(Config.EOS),
	}
}

// LoadConf merges the configuration file, if any, into Config. Flags given
// on the command line take precedence over the file.
func LoadConf(cmd *commander.Command) error {
	location := confFile
	if len(location) == 0 {
		found := false
		location, found = util.LocateFile(DEFAULT_CONF_FILE, DEFAULT_CONF_DIRS)
		if !found {
			return nil
		}
	}
	explicit := make(map[string]string)
	cmd.Flag.Visit(func(f *flag.Flag) {
		explicit[f.Name] = f.Value.String()
	})
	log.Println("Reading configuration", location)
	if err := Config.Merge(location); err != nil {
		return err
	}
	for name, value := range explicit {
		if err := cmd.Flag.Set(name, value); err != nil {
			return err
		}
	}
	return nil
}

func VerifyFlags(cmd *commander.Command, required []string) {
	for _, name := range required {
		f := cmd.Flag.Lookup(name)
		if f == nil || f.Value == nil || f.Value.String() == "" {
			log.Printf("Required flag %s not set", name)
			cmd.Usage()
			os.Exit(1)
		}
	}
}

func InitCommand(cmd *commander.Command, args []string) error {
	maxCPUs := runtime.NumCPU()
	if CPUs > maxCPUs {
		log.Printf("Warning: Number of CPUs capped to all available (%d)", maxCPUs)
		CPUs = 0
	}
	if CPUs == 0 {
		CPUs = maxCPUs
	}
	runtime.GOMAXPROCS(CPUs)
	return LoadConf(cmd)
}

func NewAppWrapCommand(f func(cmd *commander.Command, args []string) error) func(cmd *commander.Command, args []string) error {
	wrapped := func(cmd *commander.Command, args []string) error {
		if err := InitCommand(cmd, args); err != nil {
			return err
		}
		return f(cmd, args)
	}
	return wrapped
}

func CommonFlags(cmd *commander.Command) {
	cmd.Flag.IntVar(&CPUs, NUM_CPUS_FLAG, 0, "Max CPUS to use (runtime.GOMAXPROCS); 0 = all")
	cmd.Flag.StringVar(&confFile, "conf", "", "YAML configuration file")
	cmd.Flag.BoolVar(&quiet, "quiet", false, "Do not display progress")
}

func HMMFlags(cmd *commander.Command) {
	cmd.Flag.IntVar(&Config.UnkThreshold, "unk", Config.UnkThreshold, "Morphemes seen fewer times in training are replaced by the UNK symbol")
	cmd.Flag.StringVar(&Config.Unk, "unksym", Config.Unk, "UNK symbol")
	cmd.Flag.StringVar(&Config.Boundary, "boundary", Config.Boundary, "Sentence boundary tag")
	cmd.Flag.StringVar(&Config.EOS, "eos", Config.EOS, "End of sentence marker")
}

func AllCommands() *commander.Command {
	cmd := &commander.Command{
		UsageLine: os.Args[0] + " app",
		Short:     "train, run and evaluate the bigram HMM tagger",
		Subcommands: []*commander.Command{
			TrainCmd(),
			TagCmd(),
			EvalCmd(),
			PipelineCmd(),
			InspectCmd(),
		},
	}
	for _, app := range cmd.Subcommands {
		app.Run = NewAppWrapCommand(app.Run)
		CommonFlags(app)
	}
	return cmd
}

// Package conf reads hmmtag configuration files.
//
// A configuration file is YAML; keys mirror the command line flags of the
// app commands. Values left out of the file keep their defaults.
package conf

import (
	"io"
	"os"

	"gopkg.in/yaml.v2"
)

const (
	DEFAULT_UNK_THRESHOLD = 2
	DEFAULT_UNK           = "UNK"
	DEFAULT_BOUNDARY      = "<s>"
	DEFAULT_EOS           = "^EOS"
)

type Files struct {
	Train      string `yaml:"train"`
	Test       string `yaml:"test"`
	Formatted  string `yaml:"formatted"`
	Gold       string `yaml:"gold"`
	Tagged     string `yaml:"tagged"`
	Output     string `yaml:"output"`
	Model      string `yaml:"model"`
	Transition string `yaml:"transition matrix"`
	Emission   string `yaml:"emission matrix"`
	HistoryDB  string `yaml:"history db"`
}

type Conf struct {
	UnkThreshold int    `yaml:"unk threshold"`
	Unk          string `yaml:"unk symbol"`
	Boundary     string `yaml:"boundary tag"`
	EOS          string `yaml:"eos marker"`
	Workers      int    `yaml:"workers"`
	Files        Files  `yaml:"files"`
}

func Default() *Conf {
	return &Conf{
		UnkThreshold: DEFAULT_UNK_THRESHOLD,
		Unk:          DEFAULT_UNK,
		Boundary:     DEFAULT_BOUNDARY,
		EOS:          DEFAULT_EOS,
		Files: Files{
			Transition: "t_prob_matrix.txt",
			Emission:   "e_prob_matrix.txt",
		},
	}
}

// Merge reads a configuration file over c, keeping the values it does not
// mention.
func (c *Conf) Merge(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

// Write writes c as YAML in the layout Merge reads back.
func (c *Conf) Write(writer io.Writer) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	_, err = writer.Write(data)
	return err
}

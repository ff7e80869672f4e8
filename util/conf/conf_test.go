package conf

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func writeConf(t *testing.T, content string) string {
	name := filepath.Join(t.TempDir(), "hmmtag.yaml")
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		t.Fatal(err.Error())
	}
	return name
}

func TestMergeKeepsDefaults(t *testing.T) {
	c := Default()
	if err := c.Merge(writeConf(t, "unk threshold: 3\nfiles:\n  train: korean-training.txt\n")); err != nil {
		t.Fatal(err.Error())
	}
	if c.UnkThreshold != 3 {
		t.Errorf("Expected unk threshold 3, got %d", c.UnkThreshold)
	}
	if c.Files.Train != "korean-training.txt" {
		t.Errorf("Expected train file korean-training.txt, got %s", c.Files.Train)
	}
	if c.Boundary != DEFAULT_BOUNDARY {
		t.Errorf("Expected boundary %s, got %s", DEFAULT_BOUNDARY, c.Boundary)
	}
	if c.Files.Transition != "t_prob_matrix.txt" {
		t.Errorf("Expected default transition matrix file, got %s", c.Files.Transition)
	}
}

func TestWriteMerge(t *testing.T) {
	c := Default()
	c.Workers = 4
	c.Files.Gold = "gold.txt"
	buf := new(bytes.Buffer)
	if err := c.Write(buf); err != nil {
		t.Fatal(err.Error())
	}
	back := &Conf{}
	if err := back.Merge(writeConf(t, buf.String())); err != nil {
		t.Fatal(err.Error())
	}
	if *back != *c {
		t.Errorf("Expected %v, got %v", c, back)
	}
}

func TestMergeBadYAML(t *testing.T) {
	if err := Default().Merge(writeConf(t, "workers: [1, 2")); err == nil {
		t.Error("Expected error on malformed yaml")
	}
}

func TestMergeMissingFile(t *testing.T) {
	if err := Default().Merge(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error on missing file")
	}
}

func TestMerge(t *testing.T) {
	c := Default()
	c.Files.Train = "train.txt"
	if err := c.Merge(writeConf(t, "workers: 2\n")); err != nil {
		t.Fatal(err.Error())
	}
	if c.Workers != 2 || c.Files.Train != "train.txt" {
		t.Errorf("Expected workers 2 and train.txt, got %d and %s", c.Workers, c.Files.Train)
	}
}

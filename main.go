//go:build !appengine
// +build !appengine

package main

import (
	"context"
	"fmt"
	_ "net/http/pprof"
	"os"

	"github.com/gonuts/commander"

	"yu-val-weiss/hmmtag/app"
	"yu-val-weiss/hmmtag/webapi"
)

var cmd = &commander.Command{
	UsageLine: os.Args[0] + " app|api",
	Short:     "train, run and evaluate a bigram HMM part-of-speech tagger, standalone or as an api server",
}

func init() {
	cmd.Subcommands = append(app.AllCommands().Subcommands, webapi.AllCommands().Subcommands...)
}

func exit(err error) {
	fmt.Printf("**error**: %v\n", err)
	os.Exit(1)
}

func main() {
	if err := cmd.Dispatch(context.Background(), os.Args[1:]); err != nil {
		exit(err)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"go.coder.com/cli"

	"github.com/erinpentecost/wolffx/internal/effect"
)

// exitFailed is the exit status for any command error.
const exitFailed = 33

type rootCmd struct{}

func (r *rootCmd) Spec() cli.CommandSpec {
	return cli.CommandSpec{
		Name:  "wolffx",
		Usage: "[subcommand] [flags]",
		Desc:  "Apply image effects to files, one at a time or from a YAML job file.",
	}
}

func (r *rootCmd) Run(fl *pflag.FlagSet) {
	fl.Usage()
}

func (r *rootCmd) Subcommands() []cli.Command {
	return []cli.Command{
		&listCmd{},
		&describeCmd{},
		&roiCmd{},
		&applyCmd{},
		&runCmd{},
	}
}

// logFlags is embedded by every subcommand that computes.
type logFlags struct {
	verbose bool
}

func (l *logFlags) register(fl *pflag.FlagSet) {
	fl.BoolVarP(&l.verbose, "verbose", "v", false, "log every state change")
}

func (l *logFlags) logger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)
	if l.verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	effect.SetLogger(log)
	return log
}

func check(err error) {
	if err != nil {
		fmt.Printf("FAILED: %v\n", err)
		os.Exit(exitFailed)
	}
}

func main() {
	cli.RunRoot(&rootCmd{})
}

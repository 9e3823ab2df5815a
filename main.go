package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/jessevdk/go-flags"

	"github.com/feliixx/gotranslate/internal/logutil"
)

const (
	version  = "0.3.0"
	toolName = "gotranslate"
)

// GlobalOptions struct to store command line args
type GlobalOptions struct {
	General `group:"general"`

	Translate  translateCommand  `command:"translate" description:"Translate nucleotide sequences given on the command line"`
	Transeq    transeqCommand    `command:"transeq" description:"Translate every sequence of a fasta file"`
	Impact     impactCommand     `command:"impact" description:"Find the mutations deleterious for both protein function (SIFT) and structure (FoldX)"`
	Expression expressionCommand `command:"expression" description:"Find the significantly up and down regulated genes of a differential expression table"`
}

// General struct to store general command line args
type General struct {
	Version bool `short:"v" long:"version" description:"Print the tool version and exit"`
	Quiet   bool `short:"q" long:"quiet" description:"Do not print warnings"`
}

// env is shared by the commands
type env struct {
	ctx     context.Context
	general *General
	stdout  io.Writer
	stderr  io.Writer
}

func (e *env) logger() *logutil.Logger {
	return logutil.New(e.stderr, e.general.Quiet)
}

func newParser(ctx context.Context, stdout, stderr io.Writer) (*flags.Parser, *GlobalOptions) {

	var options GlobalOptions
	e := &env{
		ctx:     ctx,
		general: &options.General,
		stdout:  stdout,
		stderr:  stderr,
	}
	options.Translate.env = e
	options.Transeq.env = e
	options.Impact.env = e
	options.Expression.env = e

	p := flags.NewParser(&options, flags.HelpFlag|flags.PassDoubleDash)
	p.Name = toolName
	p.SubcommandsOptional = true
	return p, &options
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {

	p, options := newParser(ctx, stdout, stderr)

	// the command runs once every general option is known
	var command flags.Commander
	var commandArgs []string
	p.CommandHandler = func(c flags.Commander, args []string) error {
		command, commandArgs = c, args
		return nil
	}
	_, err := p.ParseArgs(args)

	var flagsErr *flags.Error
	switch {
	case errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp:
		fmt.Fprintf(stdout, "%s version %s\n\n", toolName, version)
		p.WriteHelp(stdout)
		return 0
	case errors.As(err, &flagsErr):
		fmt.Fprintf(stderr, "wrong arguments: %v, try %s --help for more informations\n", err, toolName)
		return 1
	case err != nil:
		fmt.Fprintf(stderr, "fail to parse arguments:\n%v\n", err)
		return 1
	}

	if options.Version {
		fmt.Fprintf(stdout, "%s version %s\n", toolName, version)
		return 0
	}
	if command == nil {
		fmt.Fprintf(stderr, "missing command, try %s --help for details\n", toolName)
		return 1
	}
	if err := command.Execute(commandArgs); err != nil {
		fmt.Fprintf(stderr, "fail to %s:\n%v\n", p.Active.Name, err)
		return 1
	}
	return 0
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

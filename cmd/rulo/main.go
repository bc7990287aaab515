package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/cli"
)

func main() {
	g := cli.NewGlobals()
	g.Register(flag.CommandLine)
	cmds := cli.Commands(g)

	// Answers shell completion requests and exits; a no-op otherwise.
	cli.Completion(flag.CommandLine, cmds).Complete("rulo")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range cmds {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

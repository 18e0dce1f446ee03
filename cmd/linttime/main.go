package main

import (
	"context"
	"os"

	"github.com/marcelocantos/linttime/internal/cli"
	"github.com/marcelocantos/linttime/internal/git"
)

var version = "dev"

func main() {
	os.Exit(cli.Execute(context.Background(), os.Args[1:], cli.Deps{
		StagedFiles: git.StagedFiles,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Version:     version,
	}))
}

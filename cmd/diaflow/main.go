package main

import (
	"os"

	"github.com/matzehuels/diaflow/internal/cli"
	"github.com/matzehuels/diaflow/pkg/buildinfo"
)

func main() {
	cli.SetVersion(buildinfo.Version, buildinfo.Commit, buildinfo.Date)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

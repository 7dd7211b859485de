package main

import (
	"os"

	"github.com/mrlokans/bookfinder/internal/cmd"
	"github.com/mrlokans/bookfinder/internal/config"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	config.LoadDotEnv()
	cfg := config.NewConfig()

	root := cmd.NewRootCmd(cfg, Version+" ("+Commit+")")
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

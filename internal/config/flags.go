package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/studyos/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path to the local database file (default from Config)
//	-n int      new cards per study session (default from Config)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-n"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database file")
	fs.IntVar(&cfg.NewCardsPerSession, "n", cfg.NewCardsPerSession, "new cards per study session")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}

package config

import (
	"flag"
	"os"

	"github.com/mbelyaev/ferry/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-p string   default profile id
//	-x string   proxy URL for transfers
//	-d string   download directory
//	-l string   link format: url, html or markdown
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-p", "-x", "-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DefaultProfileID, "p", cfg.DefaultProfileID, "default profile id")
	fs.StringVar(&cfg.Proxy, "x", cfg.Proxy, "proxy URL for transfers")
	fs.StringVar(&cfg.DownloadDir, "d", cfg.DownloadDir, "download directory")
	fs.StringVar(&cfg.LinkFormat, "l", cfg.LinkFormat, "link format: url, html or markdown")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}

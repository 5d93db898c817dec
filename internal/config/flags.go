package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/medxscan/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend server
//	-m string   data source mode: mock or remote
//	-d string   data directory for the local database
//	-o string   download directory for report files
//	-i int      online check interval in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-m", "-d", "-o", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the backend server")
	mode := fs.String("m", string(cfg.Mode), "data source mode: mock or remote")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory for the local database")
	fs.StringVar(&cfg.DownloadDir, "o", cfg.DownloadDir, "download directory for report files")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.Mode = SourceMode(*mode)
	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}

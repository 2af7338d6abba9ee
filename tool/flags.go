package tool

import (
	"flag"

	"github.com/mediavault/mediavault/types"
)

// SetFlags parses CLI flags and returns the override config.
func SetFlags() types.Config {
	var cfg types.Config
	flag.StringVar(&cfg.Log, "log", "", "log mode: dev|prod|none")
	flag.StringVar(&cfg.UseConfigPath, "useConfigPath", "", "override config file path")
	flag.StringVar(&cfg.UseMediaRoot, "useMediaRoot", "", "override media root directory")
	flag.IntVar(&cfg.UsePort, "usePort", 0, "override listen port")
	flag.StringVar(&cfg.UseAccessCode, "useAccessCode", "", "override the shared access code")
	flag.Parse()
	return cfg
}

package app

import "errors"

// Config holds all the necessary configuration for an App instance to
// run.
type Config struct {
	ParamPath string // .par file or directory of .par files

	GetName  string // parameter to print, empty for none
	DumpPath string // canonical re-serialization target, "-" for stdout
	Echo     bool   // trace every successful query as "name = value"

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ParamPath == "" {
		return nil, errors.New("ParamPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}

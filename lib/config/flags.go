package config

import (
	"fmt"

	"github.com/jessevdk/go-flags"
)

type Settings struct {
	Config         *Config
	VerboseLogging bool
}

// ParseArgs parses CLI flags and loads + validates the YAML config they point at.
func ParseArgs(args []string) (*Settings, []string, error) {
	var opts struct {
		ConfigFilePath string `short:"c" long:"config" description:"path to the config file" required:"true"`
		Verbose        bool   `short:"v" long:"verbose" description:"debug logging" optional:"true"`
	}

	remaining, err := flags.ParseArgs(&opts, args)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse args: %w", err)
	}

	config, err := readFileToConfig(opts.ConfigFilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = config.Validate(); err != nil {
		return nil, nil, fmt.Errorf("failed to validate config: %w", err)
	}

	return &Settings{Config: config, VerboseLogging: opts.Verbose}, remaining, nil
}

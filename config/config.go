// Package config loads the configuration for the moor command line tools.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Check struct {
		Inputs   []string `mapstructure:"inputs"`
		FailFast bool     `mapstructure:"fail_fast"`
		DumpAST  bool     `mapstructure:"dump_ast"`
	} `mapstructure:"check"`

	REPL struct {
		Prompt      string `mapstructure:"prompt"`
		HistoryFile string `mapstructure:"history_file"`
		PrintParsed bool   `mapstructure:"print_parsed"`
	} `mapstructure:"repl"`
}

func Default() *Config {
	cfg := &Config{}
	cfg.REPL.Prompt = "moor> "
	return cfg
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}

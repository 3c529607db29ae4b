package main

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	BadgerFilepath string `envconfig:"INSPECT_BADGER_FILEPATH" required:"true"`
	// INSPECT_COLOURS colours table headers
	Colours bool `envconfig:"INSPECT_COLOURS" default:"true"`
	// INSPECT_LIMIT caps the number of events printed, 0 for all
	Limit int `envconfig:"INSPECT_LIMIT" default:"100"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}

package config

import (
	"github.com/s4mli/umbral/common"
	"github.com/s4mli/umbral/logging"
)

type SSM struct {
	Region string `yaml:"region"`
}

type Web struct {
	Port     int `yaml:"port"`
	MaxConns int `yaml:"maxConns"`
}

type Root struct {
	Level     logging.LogLevel `yaml:"level"`
	Appenders []string         `yaml:"appenders"`
}

// AppenderConfig keeps every key besides kind and filters in Params, for the
// handler deserializer of that kind to decode.
type AppenderConfig struct {
	Kind    string `yaml:"kind"`
	Filters []Raw  `yaml:"filters"`
	Params  Raw    `yaml:",inline"`
}

type Log struct {
	Prefix    string                    `yaml:"prefix"`
	Root      Root                      `yaml:"root"`
	Appenders map[string]AppenderConfig `yaml:"appenders"`
}

type Config struct {
	SSM SSM `yaml:"ssm"`
	Log Log `yaml:"log"`
	Web Web `yaml:"web"`
}

func (c *Config) String() string { return common.Stringify(*c) }

func (c *Config) Validate() []error {
	var errs []error
	if c.Web != (Web{}) {
		errs = append(errs, common.Validate(c.Web)...)
	}
	return errs
}

package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/s4mli/umbral/logging"
	"github.com/s4mli/umbral/logging/dynamic"
)

const DynamicLevelKind = "dynamic_level"

//	kind: dynamic_level
//	# the name used to change this filter at runtime
//	name: foo
//	# the level the filter starts at, unless foo is already running
//	default: warn
type dynamicLevelConfig struct {
	Kind    string            `yaml:"kind"`
	Name    string            `yaml:"name"`
	Default *logging.LogLevel `yaml:"default"`
}

// DynamicLevelDeserializer builds dynamic.LevelFilter entries against Registry,
// or against dynamic.Default() when Registry is nil.
type DynamicLevelDeserializer struct {
	Registry *dynamic.Registry
}

func (d *DynamicLevelDeserializer) Deserialize(r Raw) (logging.Filter, error) {
	var c dynamicLevelConfig
	if err := r.Decode(&c); err != nil {
		return nil, err
	}
	if strings.TrimSpace(c.Name) == "" {
		return nil, errors.New("dynamic_level filter needs a name")
	}
	if c.Default == nil {
		return nil, errors.Errorf("dynamic_level filter %q needs a default", c.Name)
	}
	reg := d.Registry
	if reg == nil {
		reg = dynamic.Default()
	}
	return reg.Build(c.Name, *c.Default), nil
}

// AddDeserializers registers the dynamic filter kinds on ds.
func AddDeserializers(ds *Deserializers) {
	ds.InsertFilter(DynamicLevelKind, &DynamicLevelDeserializer{})
}

package cmd

import (
	"bytes"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DataTypeOverride narrows or widens one op's valid dtype lists for a
// single custom device profile loaded from devices.yaml.
type DataTypeOverride struct {
	Op      string   `yaml:"op"`
	Input   []string `yaml:"input,omitempty"`
	Output  []string `yaml:"output,omitempty"`
	Weights []string `yaml:"weights,omitempty"`
}

// DeviceOverride is one custom device profile in devices.yaml: a named
// generation plus the subset of core.DeviceValues constants an operator
// wants to override from the built-in table for that base generation.
type DeviceOverride struct {
	Name               string             `yaml:"name"`
	BaseGeneration     string             `yaml:"base_generation"`
	CMXSizeBytes       uint64             `yaml:"cmx_size_bytes,omitempty"`
	PageAlignmentBytes uint64             `yaml:"page_alignment_bytes,omitempty"`
	DataTypeOverrides  []DataTypeOverride `yaml:"datatype_overrides,omitempty"`
}

// DevicesConfig is the top-level shape of devices.yaml. Every top-level
// section must be listed to satisfy KnownFields(true) strict parsing: a
// typo'd key is a configuration bug, not something to silently ignore.
type DevicesConfig struct {
	Version string           `yaml:"version"`
	Devices []DeviceOverride `yaml:"devices"`
}

// loadDevicesConfig parses a devices.yaml override file with strict field
// checking.
func loadDevicesConfig(path string) DevicesConfig {
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Fatalf("Failed to read devices config %s: %v", path, err)
	}
	var cfg DevicesConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		logrus.Fatalf("Failed to parse devices config YAML: %v", err)
	}
	return cfg
}

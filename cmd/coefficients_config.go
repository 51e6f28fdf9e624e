package cmd

import (
	"bytes"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/npucost/npucost/core"
	"github.com/npucost/npucost/core/predictor/local"
)

// CoefficientEntry is one fingerprint bucket's regression line in
// coefficients.yaml, keyed by the hex-encoded core.Fingerprint it scores.
type CoefficientEntry struct {
	Fingerprint string    `yaml:"fingerprint"`
	Intercept   float64   `yaml:"intercept"`
	Weights     []float64 `yaml:"weights"`
}

// CoefficientsConfig is the top-level shape of coefficients.yaml.
type CoefficientsConfig struct {
	Version  string             `yaml:"version"`
	Default  *CoefficientEntry  `yaml:"default,omitempty"`
	Entries  []CoefficientEntry `yaml:"entries"`
}

// loadCoefficientsConfig parses coefficients.yaml with strict field
// checking: KnownFields(true) rejects unknown or misspelled keys. The
// length of each weights list is not checked here.
func loadCoefficientsConfig(path string) CoefficientsConfig {
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Fatalf("Failed to read coefficients config %s: %v", path, err)
	}
	var cfg CoefficientsConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		logrus.Fatalf("Failed to parse coefficients config YAML: %v", err)
	}
	return cfg
}

// buildRegressor turns a parsed CoefficientsConfig into a local.Regressor.
func buildRegressor(cfg CoefficientsConfig) *local.Regressor {
	table := make(map[core.Fingerprint]local.Coefficients, len(cfg.Entries))
	for _, e := range cfg.Entries {
		fp, err := parseFingerprintHex(e.Fingerprint)
		if err != nil {
			logrus.Fatalf("Invalid fingerprint %q in coefficients config: %v", e.Fingerprint, err)
		}
		table[fp] = local.Coefficients{Intercept: e.Intercept, Weights: e.Weights}
	}
	var fallback *local.Coefficients
	if cfg.Default != nil {
		fallback = &local.Coefficients{Intercept: cfg.Default.Intercept, Weights: cfg.Default.Weights}
	}
	return local.NewRegressor(table, fallback)
}

func parseFingerprintHex(s string) (core.Fingerprint, error) {
	v, err := strconv.ParseUint(s, 16, 32)
	return core.Fingerprint(v), err
}

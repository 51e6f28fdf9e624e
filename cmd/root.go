// cmd/root.go
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/npucost/npucost/core"
	_ "github.com/npucost/npucost/core/devices"
	_ "github.com/npucost/npucost/core/ops"
	"github.com/npucost/npucost/core/predictor/local"
	"github.com/npucost/npucost/core/predictor/remote"
)

var (
	workloadFilePath  string
	coefficientsPath  string
	devicesConfigPath string
	remoteProfilerURL string
	granularityFlag   string
	logLevel          string
)

var rootCmd = &cobra.Command{
	Use:   "npucost",
	Short: "Predict NPU operation cost and validate workload placements",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// Execute runs the root command, exiting the process with a non-zero status
// on failure (cobra's own usage/error printing has already run by then).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&workloadFilePath, "workloads", "", "path to a workload YAML file (required)")
	rootCmd.PersistentFlags().StringVar(&coefficientsPath, "coefficients", "", "path to a local-regressor coefficients YAML file")
	rootCmd.PersistentFlags().StringVar(&devicesConfigPath, "devices-config", "", "path to an optional devices.yaml override file, parsed and logged but not yet applied to the registry")
	rootCmd.PersistentFlags().StringVar(&remoteProfilerURL, "remote-profiler", "", "base URL of a remote profiling service; overrides the local regressor when set")
	rootCmd.PersistentFlags().StringVar(&granularityFlag, "granularity", "workload", "one of: workload, layer-unsplit, layer-on-tile")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(costCmd, validateCmd, memoryCmd, fingerprintCmd, serveProfileCmd)
}

func parseGranularity() core.Granularity {
	switch granularityFlag {
	case "workload":
		return core.GranularityWorkload
	case "layer-unsplit":
		return core.GranularityLayerUnsplit
	case "layer-on-tile":
		return core.GranularityLayerOnTile
	default:
		logrus.Fatalf("Invalid --granularity %q", granularityFlag)
		return core.GranularityWorkload
	}
}

// loadWorkloads is the shared front end for every subcommand that consumes
// --workloads: parse, resolve each entry's enums, and fail fast (one bad
// entry aborts the whole run).
func loadWorkloads() map[string]core.Workload {
	if workloadFilePath == "" {
		logrus.Fatal("--workloads is required")
	}
	file := loadWorkloadFile(workloadFilePath)
	out := make(map[string]core.Workload, len(file.Workloads))
	for name, spec := range file.Workloads {
		w, err := toWorkload(spec)
		if err != nil {
			logrus.Fatalf("Workload %q: %v", name, err)
		}
		out[name] = w
	}
	if devicesConfigPath != "" {
		dc := loadDevicesConfig(devicesConfigPath)
		logrus.Infof("Loaded %d device override profile(s) from %s (parsed only; registry overrides are not yet wired)", len(dc.Devices), devicesConfigPath)
	}
	return out
}

// buildPredictor selects the remote profiler when --remote-profiler is set,
// otherwise the local regressor (loaded from --coefficients when given, or
// an always-zero-weight fallback so the CLI is usable without a trained
// model).
func buildPredictor() core.Predictor {
	if remoteProfilerURL != "" {
		return remote.NewClient(remoteProfilerURL, "npucost-cli", logrus.StandardLogger())
	}
	fallback := &local.Coefficients{Intercept: 0, Weights: make([]float64, len(local.FeatureNames))}
	if coefficientsPath == "" {
		return local.NewRegressor(nil, fallback)
	}
	cfg := loadCoefficientsConfig(coefficientsPath)
	return buildRegressor(cfg)
}

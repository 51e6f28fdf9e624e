package devices

import "github.com/npucost/npucost/core"

// gen20Config is the earliest supported generation: integer-only
// activations/weights, a single swizzling key, and the smallest CMX budget.
func gen20Config(granularity core.Granularity) DeviceValuesConfig {
	cfg := baseConfig(core.DeviceGen20, granularity)

	cfg.Layouts = []core.Layout{core.LayoutZXYB, core.LayoutXYZB}
	cfg.Swizzlings = []core.Swizzling{core.SwizzlingKey0}

	for _, op := range allOps {
		cfg.InputDataTypes[op] = standardIntTypes
		cfg.OutputDataTypes[op] = standardIntTypes
		if cfg.WeightDataTypes[op] != nil {
			cfg.WeightDataTypes[op] = []core.DataType{core.U8, core.I8}
		}
		cfg.ExecModes[op] = []core.ExecutionMode{core.ExecModeCuboid16x16}
	}

	cfg.CMXSizeBytes = 2 * 1024 * 1024
	cfg.CMXOverheadBytes = 4096
	cfg.PageAlignmentBytes = 4096
	cfg.OutputInnermostAlignmentBytes = 16
	cfg.SOHStartFactor = 1

	return cfg
}

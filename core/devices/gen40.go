package devices

import "github.com/npucost/npucost/core"

// gen40Config introduces float activations (F16/BF16) and a full 6-key
// swizzling space, with a substantially larger CMX budget and page size.
func gen40Config(granularity core.Granularity) DeviceValuesConfig {
	cfg := baseConfig(core.DeviceGen40, granularity)

	cfg.Swizzlings = standardSwizzlings
	for _, op := range allOps {
		cfg.InputDataTypes[op] = standardActivationTypes
		cfg.OutputDataTypes[op] = standardActivationTypes
		cfg.ExecModes[op] = []core.ExecutionMode{core.ExecModeCuboid16x16, core.ExecModeCuboid8x16, core.ExecModeCuboid4x16}
	}

	cfg.CMXSizeBytes = 16 * 1024 * 1024
	cfg.CMXOverheadBytes = 8192
	cfg.PageAlignmentBytes = 16384
	cfg.OutputInnermostAlignmentBytes = 32
	cfg.SOHStartFactor = 2

	return cfg
}

package devices

import "github.com/npucost/npucost/core"

// gen50Config is the current generation: adds the two 8-bit float
// encodings, the largest CMX budget, and the autopad input-channel
// extension point (is_input_autopad; OutputAutopad is not read). When a
// Workload sets InputAutopad, the hardware pads
// the input channel count itself, so the validator's lower bound relaxes
// to 1 instead of the device's usual minimum.
func gen50Config(granularity core.Granularity) DeviceValuesConfig {
	cfg := gen40Config(granularity)
	cfg.Device = core.DeviceGen50

	floatAndFp8 := append(append([]core.DataType{}, standardActivationTypes...), core.HF8, core.BF8)
	for _, op := range allOps {
		cfg.InputDataTypes[op] = floatAndFp8
		cfg.OutputDataTypes[op] = floatAndFp8
	}

	cfg.CMXSizeBytes = 32 * 1024 * 1024
	cfg.PageAlignmentBytes = 16384

	cfg.InputChannelsRestriction = func(op core.OpType, w core.Workload, base core.MultiRange) core.MultiRange {
		if w.InputAutopad == nil || !*w.InputAutopad {
			return base
		}
		relaxed := make(core.MultiRange, len(base))
		for i, r := range base {
			relaxed[i] = core.NewRange(1, r.Hi, r.Divisor)
		}
		return relaxed
	}

	return cfg
}

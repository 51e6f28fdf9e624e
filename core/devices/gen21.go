package devices

import "github.com/npucost/npucost/core"

// gen21Config is a minor revision of gen 2.0: a second swizzling key and a
// slightly larger CMX budget, otherwise identical constraints.
func gen21Config(granularity core.Granularity) DeviceValuesConfig {
	cfg := gen20Config(granularity)
	cfg.Device = core.DeviceGen21

	cfg.Swizzlings = []core.Swizzling{core.SwizzlingKey0, core.SwizzlingKey1}
	cfg.CMXSizeBytes = 3 * 1024 * 1024

	return cfg
}

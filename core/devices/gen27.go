package devices

import "github.com/npucost/npucost/core"

// gen27Config doubles the CMX budget over gen 2.1 and introduces the
// generation's one documented oddity: DW_CONV weight tables on this
// silicon revision round up to 32-sample alignment instead of the device-
// wide 16-sample default, a quirk unique to this generation's weight DMA
// engine. This is deliberately NOT generalized to any other generation or
// op.
func gen27Config(granularity core.Granularity) DeviceValuesConfig {
	cfg := gen21Config(granularity)
	cfg.Device = core.DeviceGen27

	cfg.CMXSizeBytes = 6 * 1024 * 1024
	cfg.WeightsAlignmentSamples[core.OpDWConv] = 32

	return cfg
}

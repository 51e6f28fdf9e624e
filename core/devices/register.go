package devices

import "github.com/npucost/npucost/core"

var granularities = []core.Granularity{
	core.GranularityWorkload, core.GranularityLayerUnsplit, core.GranularityLayerOnTile,
}

func init() {
	register(core.DeviceGen20, gen20Config)
	register(core.DeviceGen21, gen21Config)
	register(core.DeviceGen27, gen27Config)
	register(core.DeviceGen40, gen40Config)
	register(core.DeviceGen50, gen50Config)
}

func register(device core.Device, build func(core.Granularity) DeviceValuesConfig) {
	byGranularity := make(map[core.Granularity]core.DeviceValues, len(granularities))
	for _, g := range granularities {
		byGranularity[g] = NewGenericDeviceValues(build(g))
	}
	core.Devices[device] = byGranularity
}

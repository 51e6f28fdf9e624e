package devices

import "github.com/npucost/npucost/core"

var allOps = []core.OpType{
	core.OpConv, core.OpDWConv, core.OpEltwiseAdd, core.OpEltwiseMul,
	core.OpMaxPool, core.OpAvgPool, core.OpCMConv, core.OpLayerNorm,
}

var standardLayouts = []core.Layout{
	core.LayoutXYZB, core.LayoutXZYB, core.LayoutYXZB, core.LayoutYZXB,
	core.LayoutZXYB, core.LayoutZYXB, core.LayoutBXYZ, core.LayoutBZXY, core.LayoutBYZX,
}

var standardSwizzlings = []core.Swizzling{
	core.SwizzlingKey0, core.SwizzlingKey1, core.SwizzlingKey2,
	core.SwizzlingKey3, core.SwizzlingKey4, core.SwizzlingKey5,
}

var standardIntTypes = []core.DataType{core.U8, core.I8, core.U16, core.I16}
var standardFloatTypes = []core.DataType{core.F16, core.BF16}
var standardActivationTypes = append(append([]core.DataType{}, standardIntTypes...), standardFloatTypes...)
var standardWeightTypes = append(append([]core.DataType{core.U4, core.I4, core.U8, core.I8}, standardFloatTypes...))

// baseConfig builds the constraint table shared by every generation before
// per-device overrides are applied. Values are conservative, hardware-
// plausible defaults for a uniform op-to-range table; per-generation
// constructors narrow or widen them.
func baseConfig(device core.Device, granularity core.Granularity) DeviceValuesConfig {
	supported := map[core.OpType]bool{}
	validOWT := map[core.OpType][]uint32{}
	kernelRange := map[core.OpType]core.Range{}
	padRange := map[core.OpType]core.Range{}
	inChannels := map[core.OpType]core.MultiRange{}
	outChannels := map[core.OpType]core.MultiRange{}
	inTypes := map[core.OpType][]core.DataType{}
	outTypes := map[core.OpType][]core.DataType{}
	weightTypes := map[core.OpType][]core.DataType{}
	strides := map[core.OpType]core.Range{}
	execModes := map[core.OpType][]core.ExecutionMode{}
	weightAlign := map[core.OpType]int64{}

	for _, op := range allOps {
		supported[op] = true
		validOWT[op] = []uint32{1, 2, 4}
		kernelRange[op] = core.NewRange(1, 11, 1)
		padRange[op] = core.NewRange(0, 10, 1)
		inChannels[op] = core.MultiRange{core.NewRange(1, 8192, 1)}
		outChannels[op] = core.MultiRange{core.NewRange(1, 8192, 16)}
		inTypes[op] = standardActivationTypes
		outTypes[op] = standardActivationTypes
		weightTypes[op] = standardWeightTypes
		strides[op] = core.NewRange(1, 8, 1)
		execModes[op] = []core.ExecutionMode{core.ExecModeCuboid16x16, core.ExecModeCuboid8x16, core.ExecModeCuboid4x16}
		weightAlign[op] = 16
	}

	// Pooling ops carry no weights: no weight dtypes and no weight
	// alignment.
	for _, op := range []core.OpType{core.OpMaxPool, core.OpAvgPool} {
		weightTypes[op] = nil
		weightAlign[op] = 0
	}

	// CM_CONV is always 1x1.
	kernelRange[core.OpCMConv] = core.NewRange(1, 1, 1)
	padRange[core.OpCMConv] = core.NewRange(0, 0, 1)
	strides[core.OpCMConv] = core.NewRange(1, 1, 1)

	// LAYER_NORM and elementwise ops are 1x1, stride-1, unweighted-sparsity
	// ops; they keep a kernel range of exactly 1 to signal "no spatial
	// receptive field".
	for _, op := range []core.OpType{core.OpEltwiseAdd, core.OpEltwiseMul, core.OpLayerNorm} {
		kernelRange[op] = core.NewRange(1, 1, 1)
		padRange[op] = core.NewRange(0, 0, 1)
		strides[op] = core.NewRange(1, 1, 1)
	}

	return DeviceValuesConfig{
		Device:          device,
		Granularity:     granularity,
		SupportedOps:    supported,
		ValidOWT:        validOWT,
		KernelRange:     kernelRange,
		PadRange:        padRange,
		InputChannels:   inChannels,
		OutputChannels:  outChannels,
		Layouts:         standardLayouts,
		Swizzlings:      standardSwizzlings,
		InputDataTypes:  inTypes,
		OutputDataTypes: outTypes,
		WeightDataTypes: weightTypes,
		StridesRange:    strides,
		ExecModes:       execModes,
		BatchRange:      core.NewRange(1, 1, 1),
		MaxSpatial:      8192,

		WeightsAlignmentSamples: weightAlign,
		SOHStartFactor:          1,
	}
}

package serialize

import (
	"fmt"

	"github.com/npucost/npucost/core"
)

func parseDevice(s string) (core.Device, error) {
	switch s {
	case "INVALID":
		return core.DeviceInvalid, nil
	case "GEN_2_0":
		return core.DeviceGen20, nil
	case "GEN_2_1":
		return core.DeviceGen21, nil
	case "GEN_2_7":
		return core.DeviceGen27, nil
	case "GEN_4_0":
		return core.DeviceGen40, nil
	case "GEN_5_0":
		return core.DeviceGen50, nil
	case "GEN_6_0":
		return core.DeviceGen60, nil
	case "GEN_7_0":
		return core.DeviceGen70, nil
	default:
		return core.DeviceInvalid, fmt.Errorf("unknown Device %q", s)
	}
}

func parseOpType(s string) (core.OpType, error) {
	switch s {
	case "CONV":
		return core.OpConv, nil
	case "DW_CONV":
		return core.OpDWConv, nil
	case "ELTWISE_ADD":
		return core.OpEltwiseAdd, nil
	case "ELTWISE_MUL":
		return core.OpEltwiseMul, nil
	case "MAXPOOL":
		return core.OpMaxPool, nil
	case "AVGPOOL":
		return core.OpAvgPool, nil
	case "CM_CONV":
		return core.OpCMConv, nil
	case "LAYER_NORM":
		return core.OpLayerNorm, nil
	default:
		return core.OpInvalid, fmt.Errorf("unknown OpType %q", s)
	}
}

func parseDataType(s string) (core.DataType, error) {
	switch s {
	case "U1":
		return core.U1, nil
	case "U2":
		return core.U2, nil
	case "U4":
		return core.U4, nil
	case "U8":
		return core.U8, nil
	case "U16":
		return core.U16, nil
	case "U32":
		return core.U32, nil
	case "I1":
		return core.I1, nil
	case "I2":
		return core.I2, nil
	case "I4":
		return core.I4, nil
	case "I8":
		return core.I8, nil
	case "I16":
		return core.I16, nil
	case "I32":
		return core.I32, nil
	case "F16":
		return core.F16, nil
	case "BF16":
		return core.BF16, nil
	case "F32":
		return core.F32, nil
	case "HF8":
		return core.HF8, nil
	case "BF8":
		return core.BF8, nil
	default:
		return core.DataTypeInvalid, fmt.Errorf("unknown DataType %q", s)
	}
}

func parseLayout(s string) (core.Layout, error) {
	switch s {
	case "XYZB":
		return core.LayoutXYZB, nil
	case "XZYB":
		return core.LayoutXZYB, nil
	case "YXZB":
		return core.LayoutYXZB, nil
	case "YZXB":
		return core.LayoutYZXB, nil
	case "ZXYB":
		return core.LayoutZXYB, nil
	case "ZYXB":
		return core.LayoutZYXB, nil
	case "BXYZ":
		return core.LayoutBXYZ, nil
	case "BZXY":
		return core.LayoutBZXY, nil
	case "BYZX":
		return core.LayoutBYZX, nil
	default:
		return core.LayoutInvalid, fmt.Errorf("unknown Layout %q", s)
	}
}

func parseExecMode(s string) (core.ExecutionMode, error) {
	switch s {
	case "CUBOID_16x16":
		return core.ExecModeCuboid16x16, nil
	case "CUBOID_8x16":
		return core.ExecModeCuboid8x16, nil
	case "CUBOID_4x16":
		return core.ExecModeCuboid4x16, nil
	case "VECTOR":
		return core.ExecModeVector, nil
	case "MATRIX":
		return core.ExecModeMatrix, nil
	case "VECTOR_FP16":
		return core.ExecModeVectorFP16, nil
	default:
		return core.ExecModeInvalid, fmt.Errorf("unknown ExecutionMode %q", s)
	}
}

func parseActFn(s string) (core.ActivationFunction, error) {
	switch s {
	case "NONE":
		return core.ActNone, nil
	case "RELU":
		return core.ActRelu, nil
	case "LRELU":
		return core.ActLRelu, nil
	case "ADD":
		return core.ActAdd, nil
	case "SUB":
		return core.ActSub, nil
	case "MULT":
		return core.ActMult, nil
	default:
		return core.ActNone, fmt.Errorf("unknown ActivationFunction %q", s)
	}
}

func parseSwizzling(s string) (core.Swizzling, error) {
	switch s {
	case "KEY_0":
		return core.SwizzlingKey0, nil
	case "KEY_1":
		return core.SwizzlingKey1, nil
	case "KEY_2":
		return core.SwizzlingKey2, nil
	case "KEY_3":
		return core.SwizzlingKey3, nil
	case "KEY_4":
		return core.SwizzlingKey4, nil
	case "KEY_5":
		return core.SwizzlingKey5, nil
	default:
		return core.SwizzlingKey0, fmt.Errorf("unknown Swizzling %q", s)
	}
}

func parseISIStrategy(s string) (core.ISIStrategy, error) {
	switch s {
	case "CLUSTERING":
		return core.ISIClustering, nil
	case "SPLIT_OVER_H":
		return core.ISISplitOverH, nil
	case "SPLIT_OVER_K":
		return core.ISISplitOverK, nil
	default:
		return core.ISIClustering, fmt.Errorf("unknown ISIStrategy %q", s)
	}
}

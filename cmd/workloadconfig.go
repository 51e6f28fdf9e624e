package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/npucost/npucost/core"
	"github.com/npucost/npucost/core/serialize"
)

// TensorSpec is a YAML-friendly core.Tensor: a shape quadruple plus named
// dtype/layout strings, matching the CSV enum spelling core/serialize uses
// so operators can copy values between the two formats.
type TensorSpec struct {
	Shape  [4]int `yaml:"shape"`
	DType  string `yaml:"dtype"`
	Layout string `yaml:"layout"`
	Sparse bool   `yaml:"sparse,omitempty"`
}

// WorkloadSpec is the YAML shape of one workload entry: the subset of
// core.Workload's fields an operator specifies directly. Halo, SEP, and the
// tri-state optional flags are left at their zero values; a workload that
// needs them is built programmatically rather than from this file.
type WorkloadSpec struct {
	Device  string     `yaml:"device"`
	Op      string     `yaml:"op"`
	Input0  TensorSpec `yaml:"input_0"`
	Output0 TensorSpec `yaml:"output_0"`

	KernelH int `yaml:"kernel_h"`
	KernelW int `yaml:"kernel_w"`
	StrideH int `yaml:"stride_h"`
	StrideW int `yaml:"stride_w"`
	PadTop  int `yaml:"pad_top,omitempty"`
	PadBot  int `yaml:"pad_bottom,omitempty"`
	PadLeft int `yaml:"pad_left,omitempty"`
	PadRight int `yaml:"pad_right,omitempty"`

	ExecMode string `yaml:"exec_mode"`
	ActFn    string `yaml:"act_fn,omitempty"`

	ActSparsity    float32 `yaml:"act_sparsity,omitempty"`
	WeightSparsity float32 `yaml:"weight_sparsity,omitempty"`

	OutputWriteTiles      uint32 `yaml:"output_write_tiles"`
	ISIStrategy           string `yaml:"isi_strategy"`
	WeightSparsityEnabled bool   `yaml:"weight_sparsity_enabled,omitempty"`
}

// WorkloadFile is the top-level shape of a workload YAML file accepted by
// the cost/validate/memory/fingerprint subcommands.
type WorkloadFile struct {
	Version   string                  `yaml:"version"`
	Workloads map[string]WorkloadSpec `yaml:"workloads"`
}

// loadWorkloadFile parses path with strict field checking.
func loadWorkloadFile(path string) WorkloadFile {
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Fatalf("Failed to read workload file %s: %v", path, err)
	}
	var wf WorkloadFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&wf); err != nil {
		logrus.Fatalf("Failed to parse workload YAML: %v", err)
	}
	return wf
}

func toTensor(spec TensorSpec) (core.Tensor, error) {
	layout, err := parseLayoutName(spec.Layout)
	if err != nil {
		return core.Tensor{}, err
	}
	dtype, err := parseDataTypeName(spec.DType)
	if err != nil {
		return core.Tensor{}, err
	}
	return core.NewTensor(core.Shape(spec.Shape), dtype, layout, spec.Sparse)
}

// toWorkload builds a core.Workload from spec, resolving its named enum
// fields through core/serialize's parser so the YAML and CSV front ends
// agree on spelling.
func toWorkload(spec WorkloadSpec) (core.Workload, error) {
	device, err := parseDeviceName(spec.Device)
	if err != nil {
		return core.Workload{}, err
	}
	op, err := parseOpTypeName(spec.Op)
	if err != nil {
		return core.Workload{}, err
	}
	input0, err := toTensor(spec.Input0)
	if err != nil {
		return core.Workload{}, fmt.Errorf("input_0: %w", err)
	}
	output0, err := toTensor(spec.Output0)
	if err != nil {
		return core.Workload{}, fmt.Errorf("output_0: %w", err)
	}
	execMode, err := parseExecModeName(spec.ExecMode)
	if err != nil {
		return core.Workload{}, err
	}
	isi, err := parseISIStrategyName(spec.ISIStrategy)
	if err != nil {
		return core.Workload{}, err
	}
	actFn := core.ActNone
	if spec.ActFn != "" {
		actFn, err = parseActFnName(spec.ActFn)
		if err != nil {
			return core.Workload{}, err
		}
	}

	return core.Workload{
		Device:  device,
		Op:      op,
		Input0:  input0,
		Output0: output0,
		Kernel:  core.KernelSize{H: spec.KernelH, W: spec.KernelW},
		Stride:  core.StrideSize{H: spec.StrideH, W: spec.StrideW},
		Pad: core.Padding{
			Top: spec.PadTop, Bottom: spec.PadBot,
			Left: spec.PadLeft, Right: spec.PadRight,
		},
		ExecMode:              execMode,
		ActFn:                 actFn,
		ActSparsity:           spec.ActSparsity,
		WeightSparsity:        spec.WeightSparsity,
		OutputWriteTiles:      spec.OutputWriteTiles,
		ISIStrategy:           isi,
		WeightSparsityEnabled: spec.WeightSparsityEnabled,
	}, nil
}

// The YAML front end reuses core/serialize's CSV enum spellings by round-
// tripping through a throwaway Operation row rather than duplicating the
// parse tables; only the handful of enums a WorkloadSpec exposes need this.
func parseDeviceName(s string) (core.Device, error) {
	op, err := decodeEnumProbe("device", "Device."+s)
	return op.Device, err
}

func parseOpTypeName(s string) (core.OpType, error) {
	op, err := decodeEnumProbe("op", "OpType."+s)
	return op.Op, err
}

func parseDataTypeName(s string) (core.DataType, error) {
	op, err := decodeEnumProbe("input_0.dtype", "DataType."+s)
	return op.Input0.DType, err
}

func parseLayoutName(s string) (core.Layout, error) {
	op, err := decodeEnumProbe("input_0.layout", "Layout."+s)
	return op.Input0.Layout, err
}

func parseExecModeName(s string) (core.ExecutionMode, error) {
	op, err := decodeEnumProbe("exec_mode", "ExecutionMode."+s)
	return op.ExecMode, err
}

func parseActFnName(s string) (core.ActivationFunction, error) {
	op, err := decodeEnumProbe("act_fn", "ActivationFunction."+s)
	return op.ActFn, err
}

func parseISIStrategyName(s string) (core.ISIStrategy, error) {
	op, err := decodeEnumProbe("isi_strategy", "ISIStrategy."+s)
	return op.ISIStrategy, err
}

// decodeEnumProbe builds a minimal, otherwise-zero CSV row with only the
// named column set to value and decodes it, returning whatever Operation
// field that column populates. It is a deliberate reuse of
// core/serialize's single source of truth for enum spelling, not a general
// CSV decode path.
func decodeEnumProbe(column, value string) (core.Operation, error) {
	header := serialize.Header()
	row := make([]string, len(header))
	for i, h := range header {
		if h == column {
			row[i] = value
			continue
		}
		row[i] = zeroColumnValue(h)
	}
	return serialize.DecodeRecord(row)
}

func zeroColumnValue(column string) string {
	switch column {
	case "device":
		return "Device.GEN_4_0"
	case "op":
		return "OpType.CONV"
	case "input_0.shape", "output_0.shape":
		return "1:1:1:1"
	case "input_0.dtype", "output_0.dtype":
		return "DataType.U8"
	case "input_0.layout", "output_0.layout":
		return "Layout.ZXYB"
	case "input_0.sparse":
		return "false"
	case "kernel.h", "kernel.w", "stride.h", "stride.w":
		return "1"
	case "pad.top", "pad.bottom", "pad.left", "pad.right":
		return "0"
	case "exec_mode":
		return "ExecutionMode.CUBOID_16x16"
	case "act_fn":
		return "ActivationFunction.NONE"
	case "act_sparsity", "weight_sparsity":
		return "0"
	case "weight_sparsity_enabled":
		return "false"
	case "output_write_tiles":
		return "1"
	case "isi_strategy":
		return "ISIStrategy.CLUSTERING"
	case "input_swizzling.0", "input_swizzling.1", "output_swizzling.0":
		return "Swizzling.KEY_0"
	case "halo.in0", "halo.out0", "halo.out0_broadcast_count", "halo.out0_inbound":
		return "0:0:0:0:0:0"
	case "sep.enabled", "sep.no_sparse_map":
		return "false"
	case "sep.pointer_table_shape", "sep.actual_input_shape":
		return "0:0:0:0"
	case "weight_type":
		return "unset"
	case "weightless_op", "in_place_output", "superdense":
		return "unset"
	default:
		return ""
	}
}

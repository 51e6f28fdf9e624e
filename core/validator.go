package core

import "fmt"

// Report accumulates every failed check the Validator runs against a
// Workload; it never short-circuits on the first failure. The verdict is
// the logical AND of all checks.
type Report struct {
	Findings []string
	OK       bool
}

func newReport() *Report {
	return &Report{OK: true}
}

func (r *Report) fail(format string, args ...any) {
	r.Findings = append(r.Findings, fmt.Sprintf(format, args...))
	r.OK = false
}

// String renders the report as a human-readable, newline-joined list of
// findings (empty string on success).
func (r Report) String() string {
	out := ""
	for i, f := range r.Findings {
		if i > 0 {
			out += "\n"
		}
		out += f
	}
	return out
}

// Validate runs the full constraint checklist against w at the given
// granularity, returning the accumulated Report and the Operation built
// from w (weights deduced regardless of the earlier checks' verdicts). The
// Operation is zero-valued when the device or op is not registered or when
// weight deduction fails. tileCount and strategy are only consulted at
// layer granularities; pass (1, SplitNone) for GranularityWorkload.
func Validate(w Workload, granularity Granularity, tileCount int, strategy SplitStrategy) (Report, Operation, error) {
	report := newReport()

	cfg, err := DeviceValuesFor(w.Device, granularity)
	if err != nil {
		report.fail("device %v is not supported: %v", w.Device, err)
		return *report, Operation{}, nil
	}

	behavior, err := BehaviorFor(w.Op)
	if err != nil {
		report.fail("op %v has no registered behavior: %v", w.Op, err)
		return *report, Operation{}, nil
	}

	// Check 1: device / op membership.
	if !cfg.SupportsOp(w.Op) {
		report.fail("op %v is not supported on device %v", w.Op, w.Device)
	}

	// Check 2: output_write_tiles.
	owtValid := false
	for _, v := range behavior.FilterOWT(cfg.ValidOWT(w.Op)) {
		if v == w.OutputWriteTiles {
			owtValid = true
			break
		}
	}
	if !owtValid {
		report.fail("output_write_tiles=%d is not a valid value for op %v", w.OutputWriteTiles, w.Op)
	}

	// Check 3: isi_strategy, filtered by OWT and the op's own filter.
	isiOptions := behavior.FilterISI(cfg.ValidISI(w.Op, w.OutputWriteTiles))
	isiValid := false
	for _, v := range isiOptions {
		if v == w.ISIStrategy {
			isiValid = true
			break
		}
	}
	if !isiValid {
		report.fail("isi_strategy %v is not valid for op %v with output_write_tiles=%d", w.ISIStrategy, w.Op, w.OutputWriteTiles)
	}

	// Check 4: kernel range + per-strategy normalization.
	kernelRange := cfg.KernelRange(w.Op)
	if !kernelRange.Contains(int64(w.Kernel.H)) || !kernelRange.Contains(int64(w.Kernel.W)) {
		report.fail("kernel (%d,%d) is out of range for op %v", w.Kernel.H, w.Kernel.W, w.Op)
	}
	if behavior.NormalizeKernelForStrategy(w.ISIStrategy, w.Kernel) && w.Kernel.H != w.Kernel.W {
		report.fail("kernel dimensions are not normalized: kh=%d != kw=%d", w.Kernel.H, w.Kernel.W)
	}

	// Check 5: padding bounds.
	padHorz := cfg.PadHorizontalRange(w.Op, w.Kernel)
	padVert := cfg.PadVerticalRange(w.Op, w.Kernel)
	if !padVert.Contains(int64(w.Pad.Top)) || !padVert.Contains(int64(w.Pad.Bottom)) {
		report.fail("vertical padding (%d,%d) is out of range for kernel height %d", w.Pad.Top, w.Pad.Bottom, w.Kernel.H)
	}
	if !padHorz.Contains(int64(w.Pad.Left)) || !padHorz.Contains(int64(w.Pad.Right)) {
		report.fail("horizontal padding (%d,%d) is out of range for kernel width %d", w.Pad.Left, w.Pad.Right, w.Kernel.W)
	}

	// Padding and halo are mutually exclusive per edge.
	if w.Pad.Top != 0 && w.Halo.In0.Top > 0 {
		report.fail("padding.top is non-zero but halo.in0.top is positive")
	}
	if w.Pad.Bottom != 0 && w.Halo.In0.Bottom > 0 {
		report.fail("padding.bottom is non-zero but halo.in0.bottom is positive")
	}
	if w.Pad.Left != 0 && w.Halo.In0.Left > 0 {
		report.fail("padding.left is non-zero but halo.in0.left is positive")
	}
	if w.Pad.Right != 0 && w.Halo.In0.Right > 0 {
		report.fail("padding.right is non-zero but halo.in0.right is positive")
	}

	// Check 6: input spatial interval.
	heightInterval := cfg.InputHeightInterval(w.Op, strategy, tileCount, w.Kernel, w.Pad, w.Stride)
	widthInterval := cfg.InputWidthInterval(w.Op, strategy, tileCount, w.Kernel, w.Pad, w.Stride)
	if !heightInterval.Contains(int64(w.Input0.Shape.H())) {
		report.fail("input_0 height %d is out of range %v", w.Input0.Shape.H(), heightInterval)
	}
	if !widthInterval.Contains(int64(w.Input0.Shape.W())) {
		report.fail("input_0 width %d is out of range %v", w.Input0.Shape.W(), widthInterval)
	}

	// Check 7: input channels.
	inChannels := cfg.InputChannels(w.Op, w.ISIStrategy)
	inChannels = cfg.InputChannelsRestriction(w.Op, w, inChannels)
	if !inChannels.Contains(int64(w.Input0.Shape.C())) {
		report.fail("input_0.channels=%d is out of range for op %v", w.Input0.Shape.C(), w.Op)
	}

	// Check 8: input layout / swizzling / dtype.
	if !containsLayout(cfg.Layouts(), w.Input0.Layout) {
		report.fail("input_0.layout %v is not valid", w.Input0.Layout)
	}
	if !containsSwizzling(cfg.Swizzlings(), w.InputSwizzling[0]) || !containsSwizzling(cfg.Swizzlings(), w.InputSwizzling[1]) {
		report.fail("input_swizzling %v is not valid", w.InputSwizzling)
	}
	if !containsDataType(cfg.InputDataTypes(w.Op), w.Input0.DType) {
		report.fail("input_0.dtype %v is not valid for op %v", w.Input0.DType, w.Op)
	}

	// Check 9: strides, scaled by the SOH factor at layer-unsplit
	// granularity.
	stridesRange := cfg.StridesRange(w.Op)
	if granularity == GranularityLayerUnsplit && w.ISIStrategy == ISISplitOverH {
		stridesRange = stridesRange.MultiplyUpper(cfg.SOHStartFactor())
	}
	if !stridesRange.Contains(int64(w.Stride.H)) || !stridesRange.Contains(int64(w.Stride.W)) {
		report.fail("stride (%d,%d) is out of range for op %v", w.Stride.H, w.Stride.W, w.Op)
	}

	// Check 10: output batch/spatial/channels.
	if w.Output0.Shape.B() != w.Input0.Shape.B() {
		report.fail("output_0.batch=%d != input_0.batch=%d", w.Output0.Shape.B(), w.Input0.Shape.B())
	}
	expectedH := cfg.ComputeOutputDim(w.Input0.Shape.H(), w.Pad.Top, w.Pad.Bottom, w.Kernel.H, w.Stride.H)
	expectedW := cfg.ComputeOutputDim(w.Input0.Shape.W(), w.Pad.Left, w.Pad.Right, w.Kernel.W, w.Stride.W)
	if w.Output0.Shape.H() != expectedH {
		report.fail("output_0.height=%d != computed %d", w.Output0.Shape.H(), expectedH)
	}
	if w.Output0.Shape.W() != expectedW {
		report.fail("output_0.width=%d != computed %d", w.Output0.Shape.W(), expectedW)
	}
	coeffW, coeffH, coeffC, _ := strategy.BorderCoeff(tileCount)
	_ = coeffW
	_ = coeffH
	baseOutChannels := cfg.OutputChannels(w.Op, w.ISIStrategy)
	outChannels := make(MultiRange, len(baseOutChannels))
	for i, r := range baseOutChannels {
		outChannels[i] = r.MultiplyUpper(int64(coeffC))
	}
	if !outChannels.Contains(int64(w.Output0.Shape.C())) {
		report.fail("output_0.channels=%d is out of range for op %v", w.Output0.Shape.C(), w.Op)
	}

	// Check 11: SOH with output_height <= 1 is rejected.
	if w.ISIStrategy == ISISplitOverH && w.Output0.Shape.H() <= 1 {
		report.fail("SPLIT_OVER_H requires output_0.height > 1, got %d", w.Output0.Shape.H())
	}

	// Check 12: output layout / swizzling / dtype.
	if !containsLayout(cfg.Layouts(), w.Output0.Layout) {
		report.fail("output_0.layout %v is not valid", w.Output0.Layout)
	}
	if !containsSwizzling(cfg.Swizzlings(), w.OutputSwizzling[0]) {
		report.fail("output_swizzling %v is not valid", w.OutputSwizzling[0])
	}
	if !containsDataType(cfg.OutputDataTypes(w.Op), w.Output0.DType) {
		report.fail("output_0.dtype %v is not valid for op %v", w.Output0.DType, w.Op)
	}

	// Check 13: weight dtype. Pooling ops carry no weight tensor at all
	// (poolBehavior.DeduceWeightShape always returns the sentinel), and any
	// op whose WeightlessOp resolves true declares its own weight-table
	// contribution absent; neither has a weight dtype to validate.
	weightType := w.ResolvedWeightType()
	weightless := w.ResolvedWeightlessOp() || w.Op == OpMaxPool || w.Op == OpAvgPool
	if !weightless && !containsDataType(cfg.WeightDataTypes(w.Op), weightType) {
		report.fail("weight dtype %v is not valid for op %v", weightType, w.Op)
	}

	// Check 14: sparsity bounds and op-specific rules.
	if w.ActSparsity < 0 || w.ActSparsity > 1 {
		report.fail("act_sparsity=%v is out of [0,1]", w.ActSparsity)
	}
	if w.WeightSparsity < 0 || w.WeightSparsity > 1 {
		report.fail("weight_sparsity=%v is out of [0,1]", w.WeightSparsity)
	}
	if !w.WeightSparsityEnabled && w.WeightSparsity != 0 {
		report.fail("weight_sparsity_enabled is false but weight_sparsity=%v", w.WeightSparsity)
	}

	// Check 15: execution mode.
	if !containsExecMode(cfg.ExecModes(w.Op), w.ExecMode) {
		report.fail("exec_mode %v is not valid for op %v", w.ExecMode, w.Op)
	}

	// in_place_output is only legal for elementwise ops with matching
	// layout and bit-footprint.
	if w.ResolvedInPlaceOutput() {
		if !w.Op.IsEltwise() {
			report.fail("in_place_output is only valid for elementwise ops, got %v", w.Op)
		} else if w.Input0.Layout != w.Output0.Layout || w.Input0.DType.BitWidth() != w.Output0.DType.BitWidth() {
			report.fail("in_place_output requires matching input/output layout and bit-footprint")
		}
	}

	// Deduce weights and build the Operation regardless of validity so far,
	// converting any tensor-construction failure into a finding rather than
	// propagating it as an exception.
	weights, werr := behavior.DeduceWeightShape(cfg, w.Input0, w.Output0, weightType, w.WeightSparsityEnabled, w.Kernel)
	if werr != nil {
		report.fail("weight shape deduction failed: %v", werr)
		return *report, Operation{}, nil
	}
	op := FromWorkload(w, weights)

	// Check 16: op-specific in/out correlation and sparsity rules.
	if cerr := behavior.CheckInOutCorelation(op); cerr != nil {
		report.fail("%v", cerr)
	}
	if serr := behavior.CheckSparsityRules(op); serr != nil {
		report.fail("%v", serr)
	}

	return *report, op, nil
}

func containsLayout(set []Layout, v Layout) bool {
	for _, l := range set {
		if l == v {
			return true
		}
	}
	return false
}

func containsSwizzling(set []Swizzling, v Swizzling) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsDataType(set []DataType, v DataType) bool {
	for _, d := range set {
		if d == v {
			return true
		}
	}
	return false
}

func containsExecMode(set []ExecutionMode, v ExecutionMode) bool {
	for _, e := range set {
		if e == v {
			return true
		}
	}
	return false
}

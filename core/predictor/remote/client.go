// Package remote implements core.Predictor against an HTTP profiling
// service: the one Predictor implementation permitted to
// block on I/O. Network and decode failures both map to
// core.ErrProfilingService rather than panicking or returning a Go error,
// since core.Predictor.Predict has no error return.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/npucost/npucost/core"
)

// Client calls a profiling service's /generate_workload endpoint with its
// exact wire contract.
type Client struct {
	BaseURL    string
	Backend    string
	HTTPClient *http.Client
	Logger     *logrus.Logger
	Timeout    time.Duration

	lastHealthy bool
}

// NewClient builds a Client against baseURL with a sane default timeout.
// Pass a nil logger to use logrus's standard logger.
func NewClient(baseURL, backend string, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Client{
		BaseURL:     baseURL,
		Backend:     backend,
		HTTPClient:  &http.Client{},
		Logger:      logger,
		Timeout:     5 * time.Second,
		lastHealthy: true,
	}
}

// IsAvailable reports whether the last request succeeded. It does not probe
// the service independently; the first Predict call after a restart always
// gets a chance to prove availability.
func (c *Client) IsAvailable() bool {
	return c.lastHealthy
}

type requestParams struct {
	Backend string `json:"backend"`
	Name    string `json:"name"`
	Timeout int    `json:"timeout"`
}

type generateWorkloadRequest struct {
	Params      requestParams `json:"params"`
	DPUWorkload workloadWire  `json:"dpu_workload"`
}

type tensorWire struct {
	Shape  [4]int `json:"shape"`
	DType  string `json:"dtype"`
	Layout string `json:"layout"`
	Sparse bool   `json:"sparse"`
}

type kernelWire struct{ H, W int }
type strideWire struct{ H, W int }
type padWire struct {
	Top, Bottom, Left, Right int
}

type edgesWire struct {
	Top, Bottom, Left, Right, Front, Back int64
}

type haloWire struct {
	In0                edgesWire `json:"in0_halo"`
	Out0               edgesWire `json:"out0_halo"`
	Out0BroadcastCount edgesWire `json:"out0_broadcast_count"`
	Out0Inbound        edgesWire `json:"out0_inbound_halo"`
}

type sepWire struct {
	Enabled           bool   `json:"enabled"`
	PointerTableShape [4]int `json:"pointer_table_shape"`
	ActualInputShape  [4]int `json:"actual_input_shape"`
	NoSparseMap       bool   `json:"no_sparse_map"`
}

type workloadWire struct {
	Device                string     `json:"device"`
	Op                    string     `json:"op"`
	Input0                tensorWire `json:"input_0"`
	Output0               tensorWire `json:"output_0"`
	Kernel                kernelWire `json:"kernel"`
	Stride                strideWire `json:"stride"`
	Pad                   padWire    `json:"pad"`
	ExecMode              string     `json:"exec_mode"`
	ActFn                 string     `json:"act_fn"`
	ActSparsity           float32    `json:"act_sparsity"`
	WeightSparsity        float32    `json:"weight_sparsity"`
	InputSwizzling        [2]string  `json:"input_swizzling"`
	OutputSwizzling       [1]string  `json:"output_swizzling"`
	OutputWriteTiles      uint32     `json:"output_write_tiles"`
	ISIStrategy           string     `json:"isi_strategy"`
	WeightSparsityEnabled bool       `json:"weight_sparsity_enabled"`
	Halo                  haloWire   `json:"halo"`
	SEP                   sepWire    `json:"sep"`
	WeightType            *string    `json:"weight_type,omitempty"`
	WeightlessOp          *bool      `json:"weightless_op,omitempty"`
	InPlaceOutput         *bool      `json:"in_place_output,omitempty"`
	Superdense            *bool      `json:"superdense,omitempty"`
}

// generateWorkloadResponse is a superset of every response shape the
// protocol defines; which fields are populated determines the dispatch
// branch.
type generateWorkloadResponse struct {
	Info       *string  `json:"info"`
	Latencies  []uint32 `json:"latencies"`
	Path       *string  `json:"path"`
	Profiling  *bool    `json:"profiling"`
	Msg        *string  `json:"msg"`
	Warning    *string  `json:"warning"`
	Error      json.RawMessage `json:"error"`
}

// Predict POSTs op's wire representation to /generate_workload and
// translates the response (or any transport failure) into a core.Result
// via a deterministic dispatch table.
func (c *Client) Predict(fp core.Fingerprint, op core.Operation) core.Result {
	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	reqBody, err := json.Marshal(generateWorkloadRequest{
		Params: requestParams{Backend: c.Backend, Name: "profiling_request", Timeout: -1},
		DPUWorkload: toWorkloadWire(op),
	})
	if err != nil {
		c.lastHealthy = false
		c.Logger.WithError(err).Warn("remote predictor: failed to encode request")
		return core.ErrProfilingService
	}

	url := c.BaseURL + "/generate_workload"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		c.lastHealthy = false
		c.Logger.WithError(err).Warn("remote predictor: failed to build request")
		return core.ErrProfilingService
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		c.lastHealthy = false
		c.Logger.WithError(err).Warn("remote predictor: request failed")
		return core.ErrProfilingService
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		c.lastHealthy = false
		c.Logger.WithField("status", resp.StatusCode).Warn("remote predictor: non-2xx response")
		return core.ErrProfilingService
	}

	var decoded generateWorkloadResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		c.lastHealthy = false
		c.Logger.WithError(err).Warn("remote predictor: malformed JSON response")
		return core.ErrProfilingService
	}

	return c.dispatch(decoded)
}

func (c *Client) dispatch(resp generateWorkloadResponse) core.Result {
	if resp.Warning != nil {
		c.lastHealthy = false
		c.Logger.WithField("msg", derefStr(resp.Msg)).Warn("remote predictor: warning response")
		return core.ErrProfilingService
	}
	if len(resp.Error) > 0 && string(resp.Error) != "null" {
		c.lastHealthy = false
		c.Logger.Warn("remote predictor: error response")
		return core.ErrProfilingService
	}
	if resp.Info == nil {
		c.lastHealthy = false
		c.Logger.Warn("remote predictor: response carries no info field")
		return core.ErrProfilingService
	}

	switch *resp.Info {
	case "success":
		c.lastHealthy = true
		if resp.Profiling != nil {
			c.lastHealthy = *resp.Profiling
		}
		return core.Result(maxUint32(resp.Latencies))
	case "status":
		c.lastHealthy = resp.Profiling == nil || *resp.Profiling
		return core.ErrProfilingService
	case "generation_error", "profiling_error", "compilation_error":
		c.lastHealthy = false
		c.Logger.WithField("msg", derefStr(resp.Msg)).Warn("remote predictor: profiling rejected the workload")
		return core.ErrProfilingService
	default:
		c.lastHealthy = false
		return core.ErrProfilingService
	}
}

func maxUint32(vs []uint32) uint32 {
	var m uint32
	for _, v := range vs {
		if v > m {
			m = v
		}
	}
	return m
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toWorkloadWire(op core.Operation) workloadWire {
	w := workloadWire{
		Device:                op.Device.String(),
		Op:                    op.Op.String(),
		Input0:                toTensorWire(op.Input0),
		Output0:               toTensorWire(op.Output0),
		Kernel:                kernelWire{H: op.Kernel.H, W: op.Kernel.W},
		Stride:                strideWire{H: op.Stride.H, W: op.Stride.W},
		Pad:                   padWire{Top: op.Pad.Top, Bottom: op.Pad.Bottom, Left: op.Pad.Left, Right: op.Pad.Right},
		ExecMode:              op.ExecMode.String(),
		ActFn:                 op.ActFn.String(),
		ActSparsity:           op.ActSparsity,
		WeightSparsity:        op.WeightSparsity,
		InputSwizzling:        [2]string{op.InputSwizzling[0].String(), op.InputSwizzling[1].String()},
		OutputSwizzling:       [1]string{op.OutputSwizzling[0].String()},
		OutputWriteTiles:      op.OutputWriteTiles,
		ISIStrategy:           op.ISIStrategy.String(),
		WeightSparsityEnabled: op.WeightSparsityEnabled,
		Halo:                  toHaloWire(op.Halo),
		SEP:                   toSEPWire(op.SEP),
		WeightlessOp:          op.WeightlessOp,
		InPlaceOutput:         op.InPlaceOutput,
		Superdense:            op.Superdense,
	}
	if op.WeightTypeSet {
		s := op.WeightType.String()
		w.WeightType = &s
	}
	return w
}

func toTensorWire(t core.Tensor) tensorWire {
	return tensorWire{
		Shape:  [4]int{t.Shape.W(), t.Shape.H(), t.Shape.C(), t.Shape.B()},
		DType:  t.DType.String(),
		Layout: t.Layout.String(),
		Sparse: t.Sparse,
	}
}

func toEdgesWire(e core.HaloEdges) edgesWire {
	return edgesWire{Top: e.Top, Bottom: e.Bottom, Left: e.Left, Right: e.Right, Front: e.Front, Back: e.Back}
}

func toHaloWire(h core.Halo) haloWire {
	return haloWire{
		In0:                toEdgesWire(h.In0),
		Out0:               toEdgesWire(h.Out0),
		Out0BroadcastCount: toEdgesWire(h.Out0BroadcastCount),
		Out0Inbound:        toEdgesWire(h.Out0Inbound),
	}
}

func toSEPWire(s core.SEP) sepWire {
	return sepWire{
		Enabled:           s.Enabled,
		PointerTableShape: [4]int{s.PointerTableShape.W(), s.PointerTableShape.H(), s.PointerTableShape.C(), s.PointerTableShape.B()},
		ActualInputShape:  [4]int{s.ActualInputShape.W(), s.ActualInputShape.H(), s.ActualInputShape.C(), s.ActualInputShape.B()},
		NoSparseMap:       s.NoSparseMap,
	}
}

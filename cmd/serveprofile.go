package cmd

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveProfileAddr string

// serveProfileCmd is a stub implementation of the remote profiler protocol,
// useful for exercising core/predictor/remote against a real
// HTTP server in development without a production profiling backend. It
// answers every well-formed request with a success envelope whose single
// latency is a crude function of the requested tensor volumes, never a
// trained estimate; a body that fails to decode gets HTTP 400 with a
// generation_error envelope.
var serveProfileCmd = &cobra.Command{
	Use:   "serve-profile",
	Short: "Run a stub /generate_workload HTTP server for local development",
	Run: func(cmd *cobra.Command, args []string) {
		mux := http.NewServeMux()
		mux.HandleFunc("/generate_workload", handleGenerateWorkload)
		logrus.Infof("Serving stub profiler on %s", serveProfileAddr)
		if err := http.ListenAndServe(serveProfileAddr, mux); err != nil {
			logrus.Fatalf("serve-profile: %v", err)
		}
	},
}

func init() {
	serveProfileCmd.Flags().StringVar(&serveProfileAddr, "addr", ":8080", "address to listen on")
}

type stubWorkloadRequest struct {
	DPUWorkload struct {
		Input0 struct {
			Shape [4]int `json:"shape"`
		} `json:"input_0"`
		Output0 struct {
			Shape [4]int `json:"shape"`
		} `json:"output_0"`
	} `json:"dpu_workload"`
}

func handleGenerateWorkload(w http.ResponseWriter, r *http.Request) {
	var req stubWorkloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"info": "generation_error", "msg": err.Error()})
		return
	}

	inVol := req.DPUWorkload.Input0.Shape[0] * req.DPUWorkload.Input0.Shape[1] * req.DPUWorkload.Input0.Shape[2] * req.DPUWorkload.Input0.Shape[3]
	outVol := req.DPUWorkload.Output0.Shape[0] * req.DPUWorkload.Output0.Shape[1] * req.DPUWorkload.Output0.Shape[2] * req.DPUWorkload.Output0.Shape[3]
	latency := uint32(inVol+outVol) + 1

	_ = json.NewEncoder(w).Encode(map[string]any{
		"info":      "success",
		"latencies": []uint32{latency},
	})
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/npucost/npucost/core"
)

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Print the byte footprint breakdown of each workload in --workloads",
	Run: func(cmd *cobra.Command, args []string) {
		workloads := loadWorkloads()
		granularity := parseGranularity()

		for _, name := range sortedNames(workloads) {
			w := workloads[name]
			report, op, err := core.Validate(w, granularity, 1, core.SplitNone)
			if err != nil || !report.OK {
				fmt.Printf("%s: cannot compute memory, workload is invalid\n", name)
				continue
			}
			cfg, err := core.DeviceValuesFor(w.Device, granularity)
			if err != nil {
				fmt.Printf("%s: %v\n", name, err)
				continue
			}
			mb, err := core.Memory(op, cfg)
			if err != nil {
				fmt.Printf("%s: %v\n", name, err)
				continue
			}
			fmt.Printf("%s: input_0=%d/%d input_1=%d/%d output_0=%d/%d total=%d/%d (contiguous/aligned bytes)\n",
				name,
				mb.Input0Contiguous, mb.Input0Aligned,
				mb.Input1Contiguous, mb.Input1Aligned,
				mb.Output0Contiguous, mb.Output0Aligned,
				mb.TotalContiguous, mb.TotalAligned)
		}
	},
}

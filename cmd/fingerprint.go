package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/npucost/npucost/core"
)

var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint",
	Short: "Print the stable cache-key fingerprint of each workload in --workloads",
	Run: func(cmd *cobra.Command, args []string) {
		workloads := loadWorkloads()
		granularity := parseGranularity()

		for _, name := range sortedNames(workloads) {
			w := workloads[name]
			report, op, err := core.Validate(w, granularity, 1, core.SplitNone)
			if err != nil || !report.OK {
				fmt.Printf("%s: cannot fingerprint, workload is invalid\n", name)
				continue
			}
			fmt.Printf("%s: %08x\n", name, uint32(op.Fingerprint()))
		}
	},
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/npucost/npucost/core"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run the full constraint checklist against each workload in --workloads",
	Run: func(cmd *cobra.Command, args []string) {
		workloads := loadWorkloads()
		granularity := parseGranularity()

		for _, name := range sortedNames(workloads) {
			w := workloads[name]
			report, _, err := core.Validate(w, granularity, 1, core.SplitNone)
			if err != nil {
				fmt.Printf("%s: error: %v\n", name, err)
				continue
			}
			if report.OK {
				fmt.Printf("%s: OK\n", name)
				continue
			}
			fmt.Printf("%s: invalid layer configuration\n", name)
			for _, finding := range report.Findings {
				fmt.Printf("  - %s\n", finding)
			}
		}
	},
}

package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/npucost/npucost/core"
)

var costInfo bool

var costCmd = &cobra.Command{
	Use:   "cost",
	Short: "Predict the cycle cost of each workload in --workloads",
	Run: func(cmd *cobra.Command, args []string) {
		workloads := loadWorkloads()
		engine := core.NewCostEngine(parseGranularity(), buildPredictor())

		names := sortedNames(workloads)
		for _, name := range names {
			w := workloads[name]
			if costInfo {
				result, info := engine.CostWithInfo(w)
				fmt.Printf("%s: %s (%s)\n", name, formatResult(result), info)
				continue
			}
			fmt.Printf("%s: %s\n", name, formatResult(engine.Cost(w)))
		}
	},
}

func init() {
	costCmd.Flags().BoolVar(&costInfo, "info", false, "also print the validation report or fingerprint alongside the result")
}

func formatResult(r core.Result) string {
	if core.IsError(r) {
		return r.String()
	}
	return fmt.Sprintf("%d cycles", uint32(r))
}

func sortedNames(workloads map[string]core.Workload) []string {
	names := make([]string, 0, len(workloads))
	for name := range workloads {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

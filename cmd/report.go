package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bareebaree/transmuseTATE/constants"
	"github.com/bareebaree/transmuseTATE/quantize"
	"github.com/bareebaree/transmuseTATE/util"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Creates a report over the encoded corpus",
	Long:  `Creates a report over the encoded corpus`,
	Run: func(cmd *cobra.Command, args []string) {
		report()
	},
}

type corpusReport struct {
	numFiles       int64
	numTokens      int64
	numBars        int64
	distinctTokens int
	missingLabels  []string
}

func analyzeCorpus() corpusReport {
	var report corpusReport
	distinct := make(map[string]int64)

	for _, path := range util.GatherTokenPaths(constants.GetResultsDir()) {
		data, err := os.ReadFile(path)
		if err != nil {
			panic("Could not read token file because: " + err.Error())
		}
		report.numFiles += 1
		for _, tok := range strings.Fields(string(data)) {
			report.numTokens += 1
			distinct[tok] += 1
			if tok == "Bar" {
				report.numBars += 1
			}
		}
	}

	report.distinctTokens = len(distinct)
	for _, label := range quantize.Labels() {
		if distinct[label] == 0 {
			report.missingLabels = append(report.missingLabels, label)
		}
	}
	return report
}

func report() {
	r := analyzeCorpus()
	fmt.Printf("report.numFiles: %v\n", r.numFiles)
	fmt.Printf("report.numTokens: %v\n", r.numTokens)
	fmt.Printf("report.numBars: %v\n", r.numBars)
	fmt.Printf("report.distinctTokens: %v\n", r.distinctTokens)
	fmt.Printf("duration labels never seen: %v\n", r.missingLabels)
}

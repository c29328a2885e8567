package cmd

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bareebaree/transmuseTATE/batch"
	"github.com/bareebaree/transmuseTATE/constants"
	"github.com/bareebaree/transmuseTATE/metadata"
	"github.com/bareebaree/transmuseTATE/score"
	"github.com/bareebaree/transmuseTATE/util"
)

func init() {
	rootCmd.AddCommand(encodeCmd)
}

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encodes scores into REMI tokens",
	Long:  `Encodes scores into REMI tokens`,
	Run: func(cmd *cobra.Command, args []string) {
		var maxNum int
		if len(args) == 1 {
			arg1, err := strconv.Atoi(args[0])
			if err != nil {
				panic(err)
			}
			maxNum = arg1
		}

		runEncode(maxNum)
	},
}

func runEncode(maxNum int) {
	resolver, err := metadata.NewResolver(
		constants.GetIndexCSVPath(),
		constants.GetProjectRoot(),
		constants.UseDynamoFallback(),
	)
	if err != nil {
		fmt.Printf("No usable metadata index (%v), continuing without one\n", err)
		resolver = metadata.EmptyResolver(constants.GetProjectRoot(), constants.UseDynamoFallback())
	}

	paths := util.GatherScorePaths(constants.GetScoresDir(), maxNum)
	runner := &batch.Runner{
		Parse:           score.Parse,
		Resolver:        resolver,
		ProjectRoot:     constants.GetProjectRoot(),
		OutDir:          constants.GetResultsDir(),
		StepsPerQuarter: constants.StepsPerQuarter,
		RunID:           uuid.New().String(),
	}
	results := runner.RunAll(paths)

	var ok, failed int
	for _, res := range results {
		if res.Failed() {
			failed++
		} else {
			ok++
		}
	}
	fmt.Printf("Run %v done: %v encoded, %v failed\n", runner.RunID, ok, failed)
}

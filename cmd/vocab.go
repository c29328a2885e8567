package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bareebaree/transmuseTATE/constants"
	"github.com/bareebaree/transmuseTATE/util"
	"github.com/bareebaree/transmuseTATE/vocab"
)

func init() {
	rootCmd.AddCommand(vocabCmd)
}

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Trains the word-level vocabulary",
	Long:  `Trains the word-level vocabulary over the encoded token corpus`,
	Run: func(cmd *cobra.Command, args []string) {
		trainVocab()
	},
}

func trainVocab() {
	paths := util.GatherTokenPaths(constants.GetResultsDir())
	v, err := vocab.TrainFiles(paths, vocab.DefaultConfig())
	if err != nil {
		panic("Could not train vocabulary because: " + err.Error())
	}

	outPath := filepath.Join(constants.GetResultsDir(), constants.VocabFileName)
	if err := v.Save(outPath); err != nil {
		panic("Could not save vocabulary because: " + err.Error())
	}
	fmt.Printf("Trained vocabulary of %v tokens from %v files, saved to %v\n", v.Size(), len(paths), outPath)
}

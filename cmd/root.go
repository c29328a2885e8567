package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "transmusetate",
	Short: "REMI tokenisation pipeline for symbolic music",
	Long:  `Converts MusicXML scores into REMI token sequences and trains a word-level vocabulary over the resulting corpus.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

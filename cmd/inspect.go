package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bareebaree/transmuseTATE/vocab"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspects a token file or vocabulary artifact",
	Long:  `Inspects a token file or vocabulary artifact`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg...")
		}
		inspect(args[0])
	},
}

func inspect(path string) {
	if strings.HasSuffix(path, ".json") {
		v, err := vocab.Load(path)
		if err != nil {
			panic("Could not load vocabulary: " + err.Error())
		}
		fmt.Printf("size: %v\n", v.Size())
		fmt.Printf("budget: %v\n", v.Config().Size)
		fmt.Printf("specials: %v\n", v.Config().SpecialTokens)
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic("Could not read token file: " + err.Error())
	}
	tokens := strings.Fields(string(data))
	fmt.Printf("tokens: %v\n", len(tokens))
	for _, tok := range tokens {
		fmt.Printf("%v\n", tok)
	}
}

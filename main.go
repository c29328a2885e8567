package main

import (
	"github.com/bareebaree/transmuseTATE/cmd"
)

func main() {
	cmd.Execute()
}

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/TopiaNetwork/topia-costmodel/cmd"
)

var mainCmd = &cobra.Command{Use: "costmodel"}

func main() {
	mainCmd.AddCommand(cmd.CostTableCmd())

	if mainCmd.Execute() != nil {
		os.Exit(1)
	}

}

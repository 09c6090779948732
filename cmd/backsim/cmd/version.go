package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the backsim CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("backsim version %s\n", version)
		fmt.Println("A bar-by-bar backtest simulator for single-asset trading strategies")
		fmt.Println("https://github.com/rustyeddy/backsim")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

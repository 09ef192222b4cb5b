package main

import (
	"github.com/spf13/cobra"
)

var quiet bool

var rootCmd = &cobra.Command{
	Use:   "sigseek",
	Short: "Sigseek - byte signature search over large binary files",
	Long: `Sigseek locates byte signatures (file-format magic numbers and other
byte sequences) in binary files of any size, reading them through a windowed
cache-backed reader so files never need to fit in memory.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (matches only)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(signaturesCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

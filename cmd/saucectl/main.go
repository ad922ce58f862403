// Command saucectl inspects, edits, catalogs, and serves SAUCE-tagged
// text-mode art.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

func main() {
	configPath := os.Getenv("SAUCECTL_CONFIG")
	if configPath == "" {
		configPath = "config.yml"
	}

	rootCmd := &cobra.Command{
		Use:     "saucectl",
		Short:   "Inspect, edit, and serve SAUCE-tagged text-mode art",
		Version: "0.1.0",
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", configPath, "config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(stripCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(curatorCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:           "contactform",
		Short:         "Admin CLI for contact form submissions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var leadsCmd = &cobra.Command{
		Use:   "leads",
		Short: "Work with stored contact form leads",
	}

	leadsCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(leadsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

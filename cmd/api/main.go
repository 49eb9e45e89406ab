package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const Version = "2.0.0"

func main() {
	rootCmd := &cobra.Command{
		Use:           "pendientes",
		Short:         "API de pendientes e clientes com lembretes por e-mail",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(schedulerCmd)
	rootCmd.AddCommand(notifyCmd)
	rootCmd.AddCommand(migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

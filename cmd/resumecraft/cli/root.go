package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resumecraft",
	Short: "Resumecraft backend server",
	Long:  `The resumecraft backend API server and its supporting commands.`,
}

func Execute() error {
	return rootCmd.Execute()
}

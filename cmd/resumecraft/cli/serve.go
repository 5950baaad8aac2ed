package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/resumecraft/backend/app"
	"github.com/resumecraft/backend/config"
	"github.com/resumecraft/backend/log"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the resumecraft backend server",
	Long: `Start the resumecraft backend server with the specified configuration.
This will start the HTTP server and make it available for client connections.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")

		cfg, err := config.Load(configPath)
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}

		if logLevel, _ := cmd.Flags().GetString("log-level"); logLevel != "" {
			cfg.Log.Level = logLevel
		}
		if logFormat, _ := cmd.Flags().GetString("log-format"); logFormat != "" {
			cfg.Log.Format = logFormat
		}
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			cfg.Log.Level = "DEBUG"
		}
		log.Configure(cfg.Log)

		if err := app.NewApp(cfg).Serve(); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("config", "", "config file (default is ./config.yaml)")
	serveCmd.Flags().StringP("log-level", "l", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	serveCmd.Flags().String("log-format", "", "Log format (json, text)")
	serveCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging (sets log level to DEBUG)")
}

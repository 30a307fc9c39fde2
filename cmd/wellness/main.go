// Command wellness serves the wellness metrics API and offers operator
// commands for bootstrapping users and printing reports.
package main

import (
	"fmt"
	"os"

	"wellness/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var v = viper.New()

var rootCmd = &cobra.Command{
	Use:           "wellness",
	Short:         "Wellness metrics engine: goals, adaptive calories and weekly balance",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("store", config.StorePostgres, "record store: postgres or memory")
	flags.String("database-url", "", "postgres connection string")
	flags.String("log-mode", "dev", "log mode: dev or prod")
	_ = v.BindPFlag("store", flags.Lookup("store"))
	_ = v.BindPFlag("database_url", flags.Lookup("database-url"))
	_ = v.BindPFlag("log_mode", flags.Lookup("log-mode"))

	rootCmd.AddCommand(serveCmd(), userCmd(), reportCmd())
}

func initConfig() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	config.SetDefaults(v)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

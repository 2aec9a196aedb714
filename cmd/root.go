// Package cmd holds the catalog-sync command line interface. Configuration
// comes from flags first, then environment variables with the CATALOG_
// prefix (e.g. CATALOG_STORE_ENGINE=redis), then .env files.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const Version = "0.1.0"

var (
	// RootCmd represents the base command when called without any subcommands.
	RootCmd = &cobra.Command{
		Use:   "catalog-sync",
		Short: "catalog server with cached key-value storage",
		Long: fmt.Sprintf(`catalog-sync (v%s)

A catalog server storing categories, items, and orders in a key-value
store behind a read-through cache, with token-based sessions and an
HTTP API.`, Version),
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of catalog-sync",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("catalog-sync v%s\n", Version)
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.AddCommand(serveCmd)
	RootCmd.AddCommand(seedCmd)
	RootCmd.AddCommand(versionCmd)

	addContainerFlags(serveCmd)
	addContainerFlags(seedCmd)
}

// initConfig loads .env files and wires viper to the CATALOG_ env prefix.
func initConfig() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	viper.SetEnvPrefix("catalog")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

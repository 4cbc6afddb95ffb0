// Package cmd implements the clipvault command line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clipvault/clipvault/internal/cmd/output"
	"github.com/clipvault/clipvault/internal/config"
	"github.com/clipvault/clipvault/pkg/library"
	"github.com/clipvault/clipvault/pkg/logging"
)

var (
	configFile   string
	libraryPath  string
	verbose      bool
	quiet        bool
	outputFormat string

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "clipvault",
	Short: "Animation clip library manager",
	Long: `Clipvault manages a library of extracted animation clips: per-clip
metadata records, folder organization, and the paired .blend and preview
files.

The library lives in a plain directory tree that can be synced or backed
up like any other files. Records are individually stored YAML documents;
a rebuildable index keeps lookups fast.`,
}

// Execute adds all child commands to the root command and runs it.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date
	rootCmd.Version = version

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.clipvault.yaml)")
	rootCmd.PersistentFlags().StringVar(&libraryPath, "library", "", "library root directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log warnings and errors")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: table, json, or yaml (auto-detected)")

	if err := viper.BindPFlag("library.path", rootCmd.PersistentFlags().Lookup("library")); err != nil {
		panic(fmt.Sprintf("Failed to bind library flag: %v", err))
	}
}

// initConfig reads in the config file and environment variables.
func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".clipvault")
	}

	// Load .env files before viper env binding; .env.local wins.
	loadEnvFiles()

	viper.SetEnvPrefix("CLIPVAULT")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	config.SetDefaults()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	configureLogging()
}

// configureLogging sets up the logging system from flags and environment.
func configureLogging() {
	cfg := config.Load()

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	if quiet {
		level = "warn"
	}
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		level = envLevel
	}

	format := cfg.LogFormat
	if envFormat := os.Getenv("LOG_FORMAT"); envFormat != "" {
		format = envFormat
	}

	logging.Configure(&logging.Config{
		Level:     level,
		Format:    format,
		Output:    "stderr",
		AddCaller: level == "debug",
	})
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		if err := godotenv.Load(envFile); err == nil && verbose {
			fmt.Fprintf(os.Stderr, "Loaded %s\n", envFile)
		}
	}
}

// openCatalog opens the configured library for a subcommand.
func openCatalog() (*library.Catalog, error) {
	cfg := config.Load()
	return library.Open(cfg.LibraryPath,
		library.WithCacheCapacity(cfg.CacheCapacity),
		library.WithFolderDeletePolicy(cfg.DeletePolicy()),
		library.WithLogger(*logging.Default()),
	)
}

// formatter resolves the output formatter for the current invocation.
func formatter() (output.Formatter, error) {
	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return nil, err
	}
	return output.NewFormatter(output.DetectFormat(string(format))), nil
}

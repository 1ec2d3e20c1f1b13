// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the audioprep CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the audioprep CLI.
var rootCmd = &cobra.Command{
	Use:   "audioprep",
	Short: "Prepare audio training datasets",
	Long: `audioprep prepares audio training datasets. It converts .m4a recordings
to .mp3 with ffmpeg while tracking per-file outcomes across runs, and rewrites
Label Studio exports so their audio references match the converted files.

Each operation is a subcommand: convert, report, and remap. Running convert
with no flags processes data/train and writes its reports there.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./audioprep.yaml or ~/.config/audioprep/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("audioprep")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "audioprep"))
		}
	}

	viper.SetEnvPrefix("AUDIOPREP")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setting resolves a string option: an explicitly set flag wins, then the
// config file or environment, then the flag's default.
func setting(cmd *cobra.Command, flag, key string) string {
	if cmd.Flags().Changed(flag) || !viper.IsSet(key) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	return viper.GetString(key)
}

// intSetting is setting for integer options.
func intSetting(cmd *cobra.Command, flag, key string) int {
	if cmd.Flags().Changed(flag) || !viper.IsSet(key) {
		v, _ := cmd.Flags().GetInt(flag)
		return v
	}
	return viper.GetInt(key)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

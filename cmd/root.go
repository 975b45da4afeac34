// Package cmd holds the hdrplay command line.
package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/GreatValueCreamSoda/hdrplay/config"
	"github.com/GreatValueCreamSoda/hdrplay/sources"
)

var (
	configPath string
	logLevel   string

	// cfg is loaded before any subcommand runs.
	cfg *config.Config
)

var RootCmd = &cobra.Command{
	Use:   "hdrplay",
	Short: "Probe, decode and play HDR video through ffms2",
	Long: `hdrplay indexes and decodes video with ffms2, reports HDR10, HDR10+,
HLG and Dolby Vision metadata and drives frames through a paced playback
pipeline.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, colorText(red, "error: ")+err.Error())
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	var err error
	if configPath == "" {
		cfg = config.Default()
	} else if cfg, err = config.Load(configPath); err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if err = sources.SetLogLevel(cfg.Log.Level); err != nil {
		return err
	}
	return nil
}

func init() {
	log.SetFlags(log.Ltime)
	log.SetPrefix("hdrplay: ")

	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"YAML configuration file")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "error",
		"libav log level [quiet, panic, fatal, error, warning, info, verbose, debug, trace]")

	RootCmd.SetUsageFunc(groupedUsage)
}

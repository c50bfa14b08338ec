package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	scenarioPath string // Path to the YAML scenario file
	frames       int    // Override for the scenario's frame count
	logLevel     string // Log verbosity level
	recordPath   string // Optional CBOR frame recording output
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "xrsim",
	Short: "Headless simulator for XR device sessions",
}

// runCmd drives a simulated device through a scripted scenario
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a headless device scenario",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if scenarioPath == "" {
			logrus.Fatalf("Scenario file not provided. Exiting.")
		}
		scenario, err := LoadScenario(scenarioPath)
		if err != nil {
			logrus.Fatalf("Unable to load scenario: %v", err)
		}
		if err := scenario.Validate(); err != nil {
			logrus.Fatalf("Invalid scenario: %v", err)
		}
		if frames > 0 {
			scenario.Frames = frames
		}

		logrus.Infof("Starting headless device, mode=%s frames=%d",
			scenario.Session.Mode, scenario.Frames)
		if err := runScenario(scenario, recordPath); err != nil {
			logrus.Fatalf("Scenario failed: %v", err)
		}
		logrus.Info("Scenario complete.")
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Path to the YAML scenario file")
	runCmd.Flags().IntVar(&frames, "frames", 0, "Number of animation frames to pump (overrides scenario)")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&recordPath, "record", "", "Write each frame to this file as CBOR")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}

// Package cmd implements the otpbox command-line interface.
package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "otpbox",
	Short: "A one-time-password input widget demo",
	Long: `otpbox showcases a reusable OTP input widget for Bubble Tea
applications: a row of single-character boxes that behaves as one
logical input field, with focus walking, paste handling, and masking.

The demo issues a TOTP challenge, shows you the current code, and asks
you to type it into the widget.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pquerna/otp"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Dicklesworthstone/otpbox/internal/challenge"
	"github.com/Dicklesworthstone/otpbox/internal/history"
	"github.com/Dicklesworthstone/otpbox/internal/theme"
	"github.com/Dicklesworthstone/otpbox/internal/tui"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Interactive OTP entry demo",
	Long: `Run the interactive demo: a TOTP challenge is issued, the current
code is displayed, and the widget below collects your answer.

Examples:
  otpbox demo                     # 6-digit code, digits only
  otpbox demo --count 8           # 8-digit code
  otpbox demo --mask              # render typed digits as bullets
  otpbox demo --theme nord.yaml   # custom colors, hot-reloaded on save
  otpbox demo --period 10         # faster code rotation

Environment:
  NO_COLOR                disable colors
  OTPBOX_REDUCED_MOTION   hide the rotation countdown`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().IntP("count", "c", 6, "number of boxes (6 or 8)")
	demoCmd.Flags().BoolP("mask", "m", false, "mask typed characters")
	demoCmd.Flags().Bool("alnum", false, "accept letters as well as digits")
	demoCmd.Flags().StringP("account", "a", "demo@example.com", "challenge account name")
	demoCmd.Flags().StringP("theme", "t", "", "theme YAML file (watched for edits)")
	demoCmd.Flags().Uint("period", 30, "code rotation period in seconds")
	demoCmd.Flags().Bool("no-history", false, "do not record attempts")
}

func runDemo(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	mask, _ := cmd.Flags().GetBool("mask")
	alnum, _ := cmd.Flags().GetBool("alnum")
	account, _ := cmd.Flags().GetString("account")
	themePath, _ := cmd.Flags().GetString("theme")
	period, _ := cmd.Flags().GetUint("period")
	noHistory, _ := cmd.Flags().GetBool("no-history")

	if count != 6 && count != 8 {
		return fmt.Errorf("invalid count %d: TOTP codes are 6 or 8 digits", count)
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the demo requires an interactive terminal")
	}

	logger := newLogger()

	th := theme.Default()
	var watcher *theme.Watcher
	if themePath != "" {
		loaded, err := theme.Load(themePath)
		if err != nil {
			return err
		}
		th = loaded

		w, err := theme.Watch(themePath)
		if err != nil {
			logger.Warn("theme watch unavailable", "error", err)
		} else {
			watcher = w
			defer watcher.Close()
		}
	}

	var store *history.Store
	if !noHistory {
		s, err := history.Open()
		if err != nil {
			logger.Warn("history unavailable", "error", err)
		} else {
			store = s
			defer store.Close()
		}
	}

	digits := otp.DigitsSix
	if count == 8 {
		digits = otp.DigitsEight
	}

	return tui.Run(tui.Config{
		Count:   count,
		Mask:    mask,
		Alnum:   alnum,
		Account: account,
		Issuer:  challenge.NewIssuer("otpbox", period, 1, digits),
		Store:   store,
		Logger:  logger,
		Theme:   th,
		Options: theme.OptionsFromEnv(),
		Watcher: watcher,
	})
}

// newLogger writes to a log file under the XDG state dir; the TUI owns the
// terminal, so stderr is not an option while it runs.
func newLogger() *slog.Logger {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return slog.New(slog.NewTextHandler(io.Discard, nil))
		}
		dir = filepath.Join(home, ".local", "state")
	}

	path := filepath.Join(dir, "otpbox", "otpbox.log")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(f, nil))
}

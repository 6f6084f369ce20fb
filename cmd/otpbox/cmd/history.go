package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/otpbox/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent verification attempts",
	Long: `List the verification attempts recorded by past demo runs,
most recent first. Codes are stored masked.

Examples:
  otpbox history
  otpbox history --limit 5
  otpbox history --json | jq .`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntP("limit", "n", 20, "maximum attempts to show")
	historyCmd.Flags().Bool("json", false, "machine-readable JSON output")
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	asJSON, _ := cmd.Flags().GetBool("json")

	store, err := history.Open()
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer store.Close()

	attempts, err := store.Recent(limit)
	if err != nil {
		return fmt.Errorf("list attempts: %w", err)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(attempts)
	}

	if len(attempts) == 0 {
		fmt.Println("no attempts recorded")
		return nil
	}

	for _, a := range attempts {
		result := "FAIL"
		if a.OK {
			result = "ok"
		}
		fmt.Printf("%s  %-4s  %-24s  %s\n",
			a.At.Local().Format("2006-01-02 15:04:05"),
			result,
			a.Account,
			a.CodeMask,
		)
	}
	return nil
}

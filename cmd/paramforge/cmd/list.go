package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List loaded param tables",
	Long: `List every param table in the archive with its internal name and
entry count.

Example:
  paramforge list --archive ./params --defs ./paramdefs`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		a, ok := appFromContext(cmd)
		if !ok {
			fmt.Printf("Error: app not found in context\n")
			return
		}

		for _, name := range a.bank.Names() {
			t, _ := a.bank.Table(name)
			fmt.Printf("%-32s %-32s %6d entries\n", name, t.Name, t.Len())
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

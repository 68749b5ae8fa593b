package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <table> [id]",
	Short: "Show a table's entries, or one entry's fields",
	Long: `Show a param table. With only a table name, prints the entry id
listing; with an entry id, prints every decoded field of that entry.

Examples:
  paramforge show Weapon.param
  paramforge show Weapon.param 100000`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		a, ok := appFromContext(cmd)
		if !ok {
			fmt.Printf("Error: app not found in context\n")
			return
		}

		t, ok := a.bank.Table(args[0])
		if !ok {
			fmt.Printf("Error: no such table %q\n", args[0])
			return
		}

		if len(args) == 1 {
			magic := t.Magic()
			fmt.Printf("%s (%s)\n", args[0], t.Name)
			fmt.Printf("magic: %04x %04x %04x  entries: %d\n", magic[0], magic[1], magic[2], t.Len())
			for _, id := range t.IDs() {
				e, _ := t.Get(id)
				if e.Name != "" {
					fmt.Printf("  %10d  %s\n", id, e.Name)
				} else {
					fmt.Printf("  %10d\n", id)
				}
			}
			return
		}

		id, err := strconv.ParseInt(args[1], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid entry id %q\n", args[1])
			return
		}
		e, ok := t.Get(int32(id))
		if !ok {
			fmt.Printf("Error: no entry %d in %s\n", id, args[0])
			return
		}

		if e.Name != "" {
			fmt.Printf("%d  %s\n", id, e.Name)
		} else {
			fmt.Printf("%d\n", id)
		}
		for i := 0; i < e.Len(); i++ {
			name, v, err := e.At(i)
			if err != nil {
				fmt.Printf("Error reading field %d: %v\n", i, err)
				return
			}
			fmt.Printf("  %-32s %s\n", name, v)
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

package cmd

import (
	"fmt"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"
)

// repackCmd represents the repack command
var repackCmd = &cobra.Command{
	Use:   "repack [table...]",
	Short: "Re-pack tables and write them back to the archive",
	Long: `Re-pack param tables from their decoded form and write them back.
With no arguments every loaded table is repacked. Entries are sorted by id
unless --unsorted keeps their original order. Unless --no-backup is given,
the previous blob is kept under a unique .bak name.

Examples:
  paramforge repack
  paramforge repack Weapon.param --unsorted`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, ok := appFromContext(cmd)
		if !ok {
			return fmt.Errorf("app not found in context")
		}

		unsorted, _ := cmd.Flags().GetBool("unsorted")
		noBackup, _ := cmd.Flags().GetBool("no-backup")

		names := args
		if len(names) == 0 {
			names = a.bank.Names()
		}

		for _, name := range names {
			t, ok := a.bank.Table(name)
			if !ok {
				return fmt.Errorf("no such table %q", name)
			}

			if !noBackup {
				old, err := a.arch.Read(name)
				if err != nil {
					return fmt.Errorf("failed to read %s for backup: %w", name, err)
				}
				backup := fmt.Sprintf("%s.%s.bak", name, ksuid.New().String())
				if err := a.arch.Write(backup, old); err != nil {
					return fmt.Errorf("failed to write backup %s: %w", backup, err)
				}
				a.log.WithField("backup", backup).Debug("backup written")
			}

			var data []byte
			var err error
			if unsorted {
				data, err = t.PackUnsorted()
			} else {
				data, err = t.Pack()
			}
			if err != nil {
				return fmt.Errorf("failed to pack %s: %w", name, err)
			}
			if err := a.arch.Write(name, data); err != nil {
				return fmt.Errorf("failed to write %s: %w", name, err)
			}
			fmt.Printf("%s: %d entries, %d bytes\n", name, t.Len(), len(data))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(repackCmd)
	repackCmd.Flags().Bool("unsorted", false, "Keep entry insertion order instead of sorting by id")
	repackCmd.Flags().Bool("no-backup", false, "Skip writing a .bak copy of the previous blob")
}

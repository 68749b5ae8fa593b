package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ashenlab/paramforge/pkg/codec"
)

type exportField struct {
	Name  string      `json:"name"`
	Value codec.Value `json:"value"`
}

type exportRow struct {
	ID     int32         `json:"id"`
	Name   string        `json:"name,omitempty"`
	Fields []exportField `json:"fields"`
}

type exportTable struct {
	Entry string      `json:"entry"`
	Param string      `json:"param"`
	Magic [3]uint16   `json:"magic"`
	Rows  []exportRow `json:"rows"`
}

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <table>",
	Short: "Export a table's decoded entries as JSON",
	Long: `Export a param table to JSON, with every entry's fields decoded in
schema order.

Examples:
  paramforge export Weapon.param
  paramforge export Weapon.param -o weapon.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, ok := appFromContext(cmd)
		if !ok {
			return fmt.Errorf("app not found in context")
		}

		t, ok := a.bank.Table(args[0])
		if !ok {
			return fmt.Errorf("no such table %q", args[0])
		}

		out := exportTable{Entry: args[0], Param: t.Name, Magic: t.Magic()}
		for _, id := range t.IDs() {
			e, _ := t.Get(id)
			row := exportRow{ID: id, Name: e.Name}
			for i := 0; i < e.Len(); i++ {
				name, v, err := e.At(i)
				if err != nil {
					return fmt.Errorf("entry %d: %w", id, err)
				}
				row.Fields = append(row.Fields, exportField{Name: name, Value: v})
			}
			out.Rows = append(out.Rows, row)
		}

		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal table: %w", err)
		}

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", output, err)
		}
		a.log.WithField("file", output).Info("table exported")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("output", "o", "", "Write JSON to this file instead of stdout")
}

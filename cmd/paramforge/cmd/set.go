package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ashenlab/paramforge/pkg/codec"
	"github.com/ashenlab/paramforge/pkg/enums"
)

// setCmd represents the set command
var setCmd = &cobra.Command{
	Use:   "set <table> <id> <field> <value>",
	Short: "Set one field of one entry and write the table back",
	Long: `Set a field value on an entry, re-pack the table and write it back
to the archive. The value is parsed according to the field's schema type.

Examples:
  paramforge set Weapon.param 100000 attackBase 120
  paramforge set Weapon.param 100000 weight 4.5`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, ok := appFromContext(cmd)
		if !ok {
			return fmt.Errorf("app not found in context")
		}

		t, ok := a.bank.Table(args[0])
		if !ok {
			return fmt.Errorf("no such table %q", args[0])
		}

		id, err := strconv.ParseInt(args[1], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid entry id %q", args[1])
		}
		e, ok := t.Get(int32(id))
		if !ok {
			return fmt.Errorf("no entry %d in %s", id, args[0])
		}

		fieldName, raw := args[2], args[3]
		f, ok := t.Def().Field(fieldName)
		if !ok {
			return fmt.Errorf("no field %q in %s", fieldName, t.Name)
		}

		v, err := parseValue(f.InternalType, fieldName, f.BitSize, raw)
		if err != nil {
			return err
		}
		if err := e.Set(fieldName, v); err != nil {
			return err
		}

		data, err := t.Pack()
		if err != nil {
			return fmt.Errorf("failed to pack %s: %w", args[0], err)
		}
		if err := a.arch.Write(args[0], data); err != nil {
			return fmt.Errorf("failed to write %s: %w", args[0], err)
		}
		a.log.WithField("entry", args[0]).Info("table written")
		fmt.Printf("%s %d %s = %s\n", args[0], id, fieldName, v)
		return nil
	},
}

// parseValue parses a command line value according to the field's schema
// type. Bitfields are plain unsigned ints regardless of their storage tag.
func parseValue(tag, fieldName string, bitSize int, raw string) (codec.Value, error) {
	if bitSize > 0 {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return codec.Value{}, fmt.Errorf("invalid bitfield value %q", raw)
		}
		return codec.IntValue(n), nil
	}

	reg := enums.NewRegistry()
	desc, ok := reg.ResolveField(tag, fieldName)
	if !ok {
		return codec.Value{}, fmt.Errorf("unknown field type %q", tag)
	}
	switch desc.Kind {
	case enums.KindInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return codec.Value{}, fmt.Errorf("invalid integer value %q", raw)
		}
		return codec.IntValue(n), nil
	case enums.KindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return codec.Value{}, fmt.Errorf("invalid float value %q", raw)
		}
		return codec.FloatValue(f), nil
	case enums.KindString:
		return codec.StringValue(raw), nil
	default:
		return codec.Value{}, fmt.Errorf("field type %q cannot be set", tag)
	}
}

func init() {
	rootCmd.AddCommand(setCmd)
}

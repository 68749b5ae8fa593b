package bank

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ashenlab/paramforge/pkg/archive"
	"github.com/ashenlab/paramforge/pkg/codec"
	"github.com/ashenlab/paramforge/pkg/enums"
	"github.com/ashenlab/paramforge/pkg/param"
	"github.com/ashenlab/paramforge/pkg/paramdef"
)

func weaponDef() *paramdef.ParamDef {
	return &paramdef.ParamDef{
		ParamName: "WEAPON_PARAM_ST",
		Fields: []paramdef.FieldDef{
			{Name: "attackBase", InternalType: "u16", Size: 2},
			{Name: "pad0", InternalType: "dummy8", Size: 2},
		},
	}
}

func seedArchive(t *testing.T) (archive.Archive, *paramdef.Cache, *enums.Registry) {
	t.Helper()
	reg := enums.NewRegistry()
	def := weaponDef()
	defs := paramdef.NewCache(paramdef.StaticProvider{"WEAPON_PARAM_ST": def})

	tbl := param.New(def, reg)
	e := codec.NewEntry(def, reg)
	require.NoError(t, e.Set("attackBase", codec.IntValue(42)))
	require.NoError(t, tbl.Put(1, e))
	blob, err := tbl.Pack()
	require.NoError(t, err)

	a, err := archive.OpenDir(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, a.Write("Weapon.param", blob))
	return a, defs, reg
}

func TestBank_LoadEditSave(t *testing.T) {
	a, defs, reg := seedArchive(t)
	b := New(a, defs, reg, nil)
	require.NoError(t, b.Load())
	require.Equal(t, 1, b.Len())
	require.Equal(t, []string{"Weapon.param"}, b.Names())

	tbl, ok := b.Table("Weapon.param")
	require.True(t, ok)
	byParam, ok := b.Find("WEAPON_PARAM_ST")
	require.True(t, ok)
	require.Same(t, tbl, byParam)

	e, ok := tbl.Get(1)
	require.True(t, ok)
	require.NoError(t, e.Set("attackBase", codec.IntValue(77)))
	require.NoError(t, b.Save())

	// Reload through a fresh bank and confirm the edit persisted.
	b2 := New(a, defs, reg, nil)
	require.NoError(t, b2.Load())
	tbl2, ok := b2.Table("Weapon.param")
	require.True(t, ok)
	e2, ok := tbl2.Get(1)
	require.True(t, ok)
	v, err := e2.Get("attackBase")
	require.NoError(t, err)
	require.EqualValues(t, 77, v.Int())
}

func TestBank_LoadFailsOnUnknownSchema(t *testing.T) {
	a, _, reg := seedArchive(t)
	empty := paramdef.NewCache(paramdef.StaticProvider{})
	b := New(a, empty, reg, nil)
	require.Error(t, b.Load())
}

func TestBank_MissingTable(t *testing.T) {
	a, defs, reg := seedArchive(t)
	b := New(a, defs, reg, nil)
	require.NoError(t, b.Load())
	_, ok := b.Table("Nope.param")
	require.False(t, ok)
	_, ok = b.Find("NOPE_PARAM_ST")
	require.False(t, ok)
}

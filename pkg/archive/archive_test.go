package archive

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDir_ReadWriteList(t *testing.T) {
	root := t.TempDir()
	a, err := OpenDir(root)
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.Write("Weapon.param", []byte{1, 2, 3}))
	require.NoError(t, a.Write("Armor.param", []byte{4}))

	// Non-param files are not listed.
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644))

	names, err := a.List()
	require.NoError(t, err)
	require.Equal(t, []string{"Armor.param", "Weapon.param"}, names)

	data, err := a.Read("Weapon.param")
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, data)

	_, err = a.Read("Missing.param")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDir_RejectsPathEscapes(t *testing.T) {
	a, err := OpenDir(t.TempDir())
	require.NoError(t, err)
	_, err = a.Read("../evil.param")
	require.Error(t, err)
	require.Error(t, a.Write("sub/dir.param", nil))
}

func TestOpenDir_NotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err := OpenDir(file)
	require.Error(t, err)
	_, err = OpenDir(filepath.Join(file, "missing"))
	require.Error(t, err)
}

func TestPebble_ReadWriteList(t *testing.T) {
	a, err := OpenPebble(filepath.Join(t.TempDir(), "db"))
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.Write("Weapon.param", []byte{1, 2, 3}))
	require.NoError(t, a.Write("Armor.param", []byte{4}))
	require.NoError(t, a.Write("Weapon.param", []byte{9, 9}))

	names, err := a.List()
	require.NoError(t, err)
	require.Equal(t, []string{"Armor.param", "Weapon.param"}, names)

	data, err := a.Read("Weapon.param")
	require.NoError(t, err)
	require.Equal(t, []byte{9, 9}, data)

	_, err = a.Read("Missing.param")
	require.True(t, errors.Is(err, ErrNotFound))
}

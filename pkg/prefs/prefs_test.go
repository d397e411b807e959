package prefs_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/locmeta/pkg/plotpage"
	"github.com/Sumatoshi-tech/locmeta/pkg/prefs"
)

func openStore(t *testing.T) (*prefs.Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "nested", "prefs.db")

	store, err := prefs.Open(path)
	require.NoError(t, err)

	return store, path
}

func TestParseScheme(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]prefs.Scheme{
		"auto":    prefs.SchemeAuto,
		" Light ": prefs.SchemeLight,
		"DARK":    prefs.SchemeDark,
	} {
		got, err := prefs.ParseScheme(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}

	_, err := prefs.ParseScheme("sepia")
	require.ErrorIs(t, err, prefs.ErrInvalidScheme)
}

func TestStore_DefaultAndRoundTrip(t *testing.T) {
	t.Parallel()

	store, path := openStore(t)

	got, err := store.Scheme(prefs.SchemeAuto)
	require.NoError(t, err)
	assert.Equal(t, prefs.SchemeAuto, got)

	require.NoError(t, store.SetScheme(prefs.SchemeDark))
	require.NoError(t, store.Close())

	reopened, err := prefs.Open(path)
	require.NoError(t, err)

	t.Cleanup(func() { assert.NoError(t, reopened.Close()) })

	got, err = reopened.Scheme(prefs.SchemeAuto)
	require.NoError(t, err)
	assert.Equal(t, prefs.SchemeDark, got)
}

func TestStore_RejectsInvalid(t *testing.T) {
	t.Parallel()

	store, _ := openStore(t)

	t.Cleanup(func() { assert.NoError(t, store.Close()) })

	require.ErrorIs(t, store.SetScheme("blue"), prefs.ErrInvalidScheme)

	got, err := store.Scheme(prefs.SchemeLight)
	require.NoError(t, err)
	assert.Equal(t, prefs.SchemeLight, got)
}

func TestResolve(t *testing.T) {
	t.Parallel()

	dark := func() (bool, error) { return true, nil }
	light := func() (bool, error) { return false, nil }
	broken := func() (bool, error) { return true, errors.New("no desktop") }

	assert.Equal(t, plotpage.ThemeDark, prefs.Resolve(prefs.SchemeDark, light))
	assert.Equal(t, plotpage.ThemeLight, prefs.Resolve(prefs.SchemeLight, dark))
	assert.Equal(t, plotpage.ThemeDark, prefs.Resolve(prefs.SchemeAuto, dark))
	assert.Equal(t, plotpage.ThemeLight, prefs.Resolve(prefs.SchemeAuto, light))
	assert.Equal(t, plotpage.ThemeLight, prefs.Resolve(prefs.SchemeAuto, broken))
	assert.Equal(t, plotpage.ThemeLight, prefs.Resolve(prefs.SchemeAuto, nil))
}

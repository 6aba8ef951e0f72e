// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestNameCache_SurvivesReopen tests that overrides persist across a
// close and reopen of the database.
func TestNameCache_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.db")

	cache, err := OpenNameCache(path)
	require.NoError(t, err)
	require.NoError(t, cache.Set("chat-1", "Permafrost"))
	require.NoError(t, cache.Set("chat-2", "Ocean currents"))
	require.NoError(t, cache.Close())

	reopened, err := OpenNameCache(path)
	require.NoError(t, err)
	defer reopened.Close()

	name, err := reopened.Get("chat-1")
	require.NoError(t, err)
	require.Equal(t, "Permafrost", name)

	all, err := reopened.All()
	require.NoError(t, err)
	require.Len(t, all, 2)
}

// TestNameCache_UnicodeNames tests that multibyte names round-trip.
func TestNameCache_UnicodeNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.db")

	cache, err := OpenNameCache(path)
	require.NoError(t, err)
	defer cache.Close()

	require.NoError(t, cache.Set("chat-1", "気候変動 ❄️"))

	name, err := cache.Get("chat-1")
	require.NoError(t, err)
	require.Equal(t, "気候変動 ❄️", name)
}

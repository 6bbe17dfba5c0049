package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegister(t *testing.T) {
	t.Parallel()

	t.Run("ids grow monotonically and are never reused", func(t *testing.T) {
		t.Parallel()

		r := newRegistry[int]()

		id0, _, err := r.register()
		require.NoError(t, err)
		id1, _, err := r.register()
		require.NoError(t, err)
		assert.Equal(t, id0+1, id1)

		r.remove([]uint64{id0, id1})

		id2, _, err := r.register()
		require.NoError(t, err)
		assert.Greater(t, id2, id1, "removed ids must not be reassigned")
	})
}

func TestRegistryBroadcastAll(t *testing.T) {
	t.Parallel()

	t.Run("reports failed ids in ascending order", func(t *testing.T) {
		t.Parallel()

		r := newRegistry[int]()

		id0, rx0, err := r.register()
		require.NoError(t, err)
		_, rx1, err := r.register()
		require.NoError(t, err)
		id2, rx2, err := r.register()
		require.NoError(t, err)

		require.NoError(t, rx0.Close())
		require.NoError(t, rx2.Close())

		failed, err := r.broadcastAll(7)
		require.NoError(t, err)
		assert.Equal(t, []uint64{id0, id2}, failed)

		v, err := rx1.TryReceive()
		require.NoError(t, err)
		assert.Equal(t, 7, v)
	})
}

func TestRegistryRemove(t *testing.T) {
	t.Parallel()

	t.Run("unknown ids are no-ops", func(t *testing.T) {
		t.Parallel()

		r := newRegistry[int]()

		id, _, err := r.register()
		require.NoError(t, err)

		assert.Equal(t, 0, r.remove([]uint64{42, 1000}))
		assert.Equal(t, 1, r.count())

		assert.Equal(t, 1, r.remove([]uint64{id}))
		assert.Equal(t, 0, r.count())
	})

	t.Run("reports only entries actually deleted", func(t *testing.T) {
		t.Parallel()

		r := newRegistry[int]()

		id0, _, err := r.register()
		require.NoError(t, err)
		id1, _, err := r.register()
		require.NoError(t, err)

		// A second reap of the same ids must count zero, so racing
		// broadcasts cannot inflate removal metrics.
		assert.Equal(t, 2, r.remove([]uint64{id0, id1}))
		assert.Equal(t, 0, r.remove([]uint64{id0, id1}))
	})
}

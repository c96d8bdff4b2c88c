package orders

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northlight-prints/storefront-backend/internal/localstore"
	"github.com/northlight-prints/storefront-backend/pkg/enums"
)

func newHistoryStore(t *testing.T) *History {
	t.Helper()
	store, err := localstore.New(t.TempDir())
	require.NoError(t, err)
	return NewHistory(store)
}

func TestHistoryRecordNewestFirst(t *testing.T) {
	history := newHistoryStore(t)

	require.NoError(t, history.Record("client-a", sampleOrder("ord_h1")))
	require.NoError(t, history.Record("client-a", sampleOrder("ord_h2")))

	entries := history.List("client-a")
	require.Len(t, entries, 2)
	assert.Equal(t, "ord_h2", entries[0].ID)
	assert.Equal(t, "ord_h1", entries[1].ID)
	require.Len(t, entries[0].Items, 1)
	assert.Equal(t, "Dune Light", entries[0].Items[0].Name)
	assert.Equal(t, enums.OrderStatusPending.String(), entries[0].Status)
}

func TestHistoryIsNamespacedPerClient(t *testing.T) {
	history := newHistoryStore(t)

	require.NoError(t, history.Record("client-a", sampleOrder("ord_h3")))

	assert.Empty(t, history.List("client-b"))
	assert.Len(t, history.List("client-a"), 1)
}

func TestHistoryTrimsToCap(t *testing.T) {
	history := newHistoryStore(t)

	for i := 0; i < historyLimit+5; i++ {
		require.NoError(t, history.Record("client-a", sampleOrder(fmt.Sprintf("ord_h%d", i))))
	}

	entries := history.List("client-a")
	assert.Len(t, entries, historyLimit)
	assert.Equal(t, fmt.Sprintf("ord_h%d", historyLimit+4), entries[0].ID)
}

func TestHistoryMissingDocumentReadsEmpty(t *testing.T) {
	history := newHistoryStore(t)
	assert.Empty(t, history.List("nobody"))
}

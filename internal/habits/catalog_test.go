package habits

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet_KnownHabit(t *testing.T) {
	h, err := Get("workout")
	assert.NoError(t, err)
	assert.Equal(t, "workout", h.ID)
	assert.NotEmpty(t, h.Name)
	assert.NotEmpty(t, h.Description)
}

func TestGet_UnknownHabit(t *testing.T) {
	_, err := Get("juggling")
	assert.ErrorIs(t, err, ErrUnknownHabit)
}

func TestIDs_MatchesCatalogOrder(t *testing.T) {
	ids := IDs()
	assert.Len(t, ids, len(Catalog))
	for i, h := range Catalog {
		assert.Equal(t, h.ID, ids[i])
	}
}

func TestCatalog_UniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for _, h := range Catalog {
		assert.False(t, seen[h.ID], "duplicate habit id %s", h.ID)
		seen[h.ID] = true
	}
}

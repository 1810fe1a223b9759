package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	t.Run("accepts every defined role", func(t *testing.T) {
		for _, r := range Roles {
			parsed, err := ParseRole(string(r))
			require.NoError(t, err)
			assert.Equal(t, r, parsed)
			assert.True(t, parsed.Valid())
		}
	})

	t.Run("rejects unknown and lowercase values", func(t *testing.T) {
		for _, s := range []string{"", "client", "SUPERADMIN", "Cliente"} {
			_, err := ParseRole(s)
			assert.Error(t, err, s)
		}
	})
}

func TestParseTaxonomy(t *testing.T) {
	t.Run("statuses round-trip", func(t *testing.T) {
		for _, s := range Statuses {
			parsed, err := ParseStatus(string(s))
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
		_, err := ParseStatus("DONE")
		assert.Error(t, err)
	})

	t.Run("priorities round-trip", func(t *testing.T) {
		for _, p := range Priorities {
			parsed, err := ParsePriority(string(p))
			require.NoError(t, err)
			assert.Equal(t, p, parsed)
		}
		_, err := ParsePriority("URGENT")
		assert.Error(t, err)
	})

	t.Run("categories round-trip", func(t *testing.T) {
		for _, c := range Categories {
			parsed, err := ParseCategory(string(c))
			require.NoError(t, err)
			assert.Equal(t, c, parsed)
		}
		_, err := ParseCategory("HARDWARE")
		assert.Error(t, err)
	})
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Cliente", RoleClient.Label())
	assert.Equal(t, "Administrador", RoleAdmin.Label())
	assert.Equal(t, "Pendiente", StatusPending.Label())
	assert.Equal(t, "En Progreso", StatusInProgress.Label())
	assert.Equal(t, "Crítica", PriorityCritical.Label())
	assert.Equal(t, "Soporte Técnico", CategoryTechnicalSupport.Label())

	// Unknown values fall through to the raw string.
	assert.Equal(t, "WEIRD", Status("WEIRD").Label())
}

func TestRequestOwnedBy(t *testing.T) {
	req := &Request{ID: "r1", User: &Owner{ID: "u1"}}
	assert.True(t, req.OwnedBy("u1"))
	assert.False(t, req.OwnedBy("u2"))

	orphan := &Request{ID: "r2"}
	assert.False(t, orphan.OwnedBy("u1"))
}

package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModules_Order(t *testing.T) {
	mods := Modules()
	names := make([]string, 0, len(mods))
	for _, m := range mods {
		names = append(names, m.Name)
		require.NotNil(t, m.Migrations)
		assert.NotEmpty(t, m.Migrations.Sorted(), "%s has no migrations", m.Name)
	}
	assert.Equal(t, []string{"tournament", "team", "score"}, names)
}

func TestModules_UniqueNames(t *testing.T) {
	seen := map[string]string{}
	for _, m := range Modules() {
		for _, mig := range m.Migrations.Sorted() {
			prev, dup := seen[mig.Name]
			assert.False(t, dup, "migration %s registered by %s and %s", mig.Name, prev, m.Name)
			seen[mig.Name] = m.Name
		}
	}
}

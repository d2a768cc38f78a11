package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModelOrDefault(t *testing.T) {
	assert.Equal(t, "grok-3", ModelOrDefault("grok-3").ID)
	assert.Equal(t, DefaultModelID, ModelOrDefault("no-such-model").ID)
}

func TestAvatars(t *testing.T) {
	all := Avatars()
	assert.Len(t, all, 11)
	assert.Equal(t, "elon", all[0].ID)

	for _, a := range all {
		assert.NotEmpty(t, Persona(a.ID), a.ID)
		assert.NotEmpty(t, Intro(a.ID), a.ID)
		assert.True(t, IsPredefined(a.ID))
	}
	assert.False(t, IsPredefined("custom-1"))
	assert.Empty(t, Persona("custom-1"))
}

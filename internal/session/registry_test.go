package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvales/lingolog/internal/models"
	"github.com/mvales/lingolog/internal/review"
	"github.com/mvales/lingolog/internal/session"
)

func newSession(t *testing.T) *review.Session {
	t.Helper()
	sess, err := review.NewSession([]models.Exercise{{ID: 1}}, review.NopWriter())
	require.NoError(t, err)
	return sess
}

func TestRegistry_PutAndGet(t *testing.T) {
	reg := session.NewRegistry(time.Hour)
	sess := newSession(t)

	id := reg.Put(7, sess)
	require.NotEmpty(t, id)

	assert.Same(t, sess, reg.Get(id, 7))
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_GetRejectsOtherLearner(t *testing.T) {
	reg := session.NewRegistry(time.Hour)
	id := reg.Put(7, newSession(t))

	assert.Nil(t, reg.Get(id, 8), "sessions are scoped to their owner")
	assert.Nil(t, reg.Get("missing", 7))
}

func TestRegistry_Remove(t *testing.T) {
	reg := session.NewRegistry(time.Hour)
	id := reg.Put(7, newSession(t))

	assert.False(t, reg.Remove(id, 8), "other learners cannot discard the session")
	assert.True(t, reg.Remove(id, 7))
	assert.False(t, reg.Remove(id, 7), "already removed")
	assert.Zero(t, reg.Len())
}

func TestRegistry_SweepDropsExpired(t *testing.T) {
	reg := session.NewRegistry(time.Minute)
	reg.Put(7, newSession(t))
	reg.Put(8, newSession(t))

	assert.Zero(t, reg.Sweep(time.Now()))
	assert.Equal(t, 2, reg.Sweep(time.Now().Add(2*time.Minute)))
	assert.Zero(t, reg.Len())
}

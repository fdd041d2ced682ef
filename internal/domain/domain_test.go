package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ada@example.com", NormalizeEmail("  Ada@Example.COM "))
}

func TestSession_IsExpired(t *testing.T) {
	s := &Session{ExpiresAt: time.Now().Add(-time.Minute)}
	assert.True(t, s.IsExpired())

	s.ExpiresAt = time.Now().Add(time.Hour)
	assert.False(t, s.IsExpired())
}

func TestBase_Timestamps(t *testing.T) {
	var b Base
	b.InitTimestamps()
	assert.Equal(t, b.CreatedAt, b.UpdatedAt)

	time.Sleep(time.Millisecond)
	b.Touch()
	assert.True(t, b.UpdatedAt.After(b.CreatedAt))
}

func TestSavedPalette_NewerThan(t *testing.T) {
	now := time.Now()
	older := &SavedPalette{ID: "pal-a", CreatedAt: now.Add(-time.Second)}
	newer := &SavedPalette{ID: "pal-b", CreatedAt: now}
	tie := &SavedPalette{ID: "pal-c", CreatedAt: now}

	assert.True(t, newer.NewerThan(older))
	assert.False(t, older.NewerThan(newer))
	assert.True(t, tie.NewerThan(newer))
}

func TestSavedPalette_Swatches(t *testing.T) {
	p := &SavedPalette{Colors: []string{"#000000", "#ffffff"}}
	sw := p.Swatches()
	assert.Len(t, sw, 2)
	assert.Equal(t, "#ffffff", sw[0].Text)
}

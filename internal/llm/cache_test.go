package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxxyapp/taxxy/internal/model"
)

func TestResultCacheRoundTrip(t *testing.T) {
	cache := newResultCache(time.Minute)
	defer cache.Close()

	result := model.ClassificationResult{
		Tag:        "business-software",
		Category:   "software",
		Purpose:    model.PurposeBusiness,
		Confidence: 0.8,
	}

	cache.set("mia\x00figma", result)

	got, found := cache.get("mia\x00figma")
	require.True(t, found)
	assert.Equal(t, result, got)
	assert.Equal(t, 1, cache.size())
}

func TestResultCacheMiss(t *testing.T) {
	cache := newResultCache(time.Minute)
	defer cache.Close()

	_, found := cache.get("nonexistent")
	assert.False(t, found)
}

func TestResultCacheExpiry(t *testing.T) {
	cache := newResultCache(10 * time.Millisecond)
	defer cache.Close()

	cache.set("key", model.ClassificationResult{Tag: "t"})

	time.Sleep(25 * time.Millisecond)

	_, found := cache.get("key")
	assert.False(t, found, "expired entries must not be served")
}

func TestResultCacheDefaultTTL(t *testing.T) {
	cache := newResultCache(0)
	defer cache.Close()

	assert.Equal(t, 15*time.Minute, cache.ttl)
}

func TestResultCacheOverwrite(t *testing.T) {
	cache := newResultCache(time.Minute)
	defer cache.Close()

	cache.set("key", model.ClassificationResult{Tag: "old"})
	cache.set("key", model.ClassificationResult{Tag: "new"})

	got, found := cache.get("key")
	require.True(t, found)
	assert.Equal(t, "new", got.Tag)
	assert.Equal(t, 1, cache.size())
}

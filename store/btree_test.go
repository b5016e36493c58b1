package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBTreeSetGetDelete(t *testing.T) {
	db := MemStore()

	k, v := []byte("foo"), []byte("bar")
	assert.Nil(t, db.Get(k))
	assert.False(t, db.Has(k))

	db.Set(k, v)
	assert.Equal(t, v, db.Get(k))
	assert.True(t, db.Has(k))

	db.Delete(k)
	assert.Nil(t, db.Get(k))
	assert.False(t, db.Has(k))
}

func TestCacheWrapWriteAndDiscard(t *testing.T) {
	db := MemStore()
	db.Set([]byte("a"), []byte("1"))

	// discarded writes never reach the parent
	cache := db.CacheWrap()
	cache.Set([]byte("b"), []byte("2"))
	cache.Delete([]byte("a"))
	require.Nil(t, cache.Get([]byte("a")))
	require.Equal(t, []byte("2"), cache.Get([]byte("b")))
	cache.Discard()

	assert.Equal(t, []byte("1"), db.Get([]byte("a")))
	assert.Nil(t, db.Get([]byte("b")))

	// written caches do
	cache = db.CacheWrap()
	cache.Set([]byte("b"), []byte("2"))
	cache.Delete([]byte("a"))
	cache.Write()

	assert.Nil(t, db.Get([]byte("a")))
	assert.Equal(t, []byte("2"), db.Get([]byte("b")))
}

func TestCacheWrapLayers(t *testing.T) {
	db := MemStore()
	db.Set([]byte("k"), []byte("base"))

	outer := db.CacheWrap()
	outer.Set([]byte("k"), []byte("outer"))

	inner := outer.CacheWrap()
	inner.Set([]byte("k"), []byte("inner"))
	require.Equal(t, []byte("inner"), inner.Get([]byte("k")))

	inner.Discard()
	require.Equal(t, []byte("outer"), outer.Get([]byte("k")))

	outer.Write()
	require.Equal(t, []byte("outer"), db.Get([]byte("k")))
}

func TestIteratorMergesCacheAndParent(t *testing.T) {
	db := MemStore()
	db.Set([]byte("a"), []byte("1"))
	db.Set([]byte("c"), []byte("3"))

	cache := db.CacheWrap()
	cache.Set([]byte("b"), []byte("2"))
	cache.Delete([]byte("c"))
	cache.Set([]byte("d"), []byte("4"))

	var keys []string
	iter := cache.Iterator(nil, nil)
	for ; iter.Valid(); iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	iter.Close()
	assert.Equal(t, []string{"a", "b", "d"}, keys)

	keys = nil
	iter = cache.ReverseIterator(nil, nil)
	for ; iter.Valid(); iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	iter.Close()
	assert.Equal(t, []string{"d", "b", "a"}, keys)

	// bounded range, end exclusive
	keys = nil
	iter = cache.Iterator([]byte("b"), []byte("d"))
	for ; iter.Valid(); iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	iter.Close()
	assert.Equal(t, []string{"b"}, keys)
}

package store

import (
	"bytes"
	"fmt"

	"github.com/google/btree"
)

const (
	// DefaultFreeListSize is the size we hold for free nodes in btree
	DefaultFreeListSize = btree.DefaultFreeListSize
)

// BTreeCacheable adds a simple btree-based CacheWrap
// strategy to a KVStore
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

// CacheWrap returns a BTreeCacheWrap that can be later
// written to this store, or rolled back
func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, nil)
}

// MemStore returns a simple implementation useful for tests.
// There is no persistence here....
func MemStore() CacheableKVStore {
	return NewBTreeCacheWrap(EmptyKVStore{}, nil)
}

// BTreeCacheWrap places a btree cache over a KVStore. All writes are
// buffered in the btree until Write is called, so discarding the wrap
// leaves the backing store untouched.
type BTreeCacheWrap struct {
	bt   *btree.BTree
	free *btree.FreeList
	back KVStore
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap initializes a BTree to cache around this
// kv store. All writes go to the btree until Write is called.
//
// free may be nil, but set to an existing list to reuse it
// for memory savings
func NewBTreeCacheWrap(kv KVStore, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		bt:   btree.NewWithFreeList(2, free),
		free: free,
		back: kv,
	}
}

// CacheWrap layers another BTree on top of this one.
// Don't change horses in mid-stream....
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.free)
}

// Write syncs with the underlying store.
// And then cleans up.
func (b BTreeCacheWrap) Write() {
	b.bt.Ascend(func(item btree.Item) bool {
		switch t := item.(type) {
		case setItem:
			b.back.Set(t.key, t.value)
		case deletedItem:
			b.back.Delete(t.key)
		default:
			panic(fmt.Sprintf("Unknown item in btree: %#v", item))
		}
		return true
	})
	b.Discard()
}

// Discard invalidates this CacheWrap and releases all data
func (b BTreeCacheWrap) Discard() {
	// clean up the btree -> freelist
	for stop := false; !stop; {
		rem := b.bt.DeleteMin()
		stop = (rem == nil)
	}
}

// Set writes to the BTree
func (b BTreeCacheWrap) Set(key, value []byte) {
	b.bt.ReplaceOrInsert(newSetItem(key, value))
}

// Delete marks the key as removed in the BTree
func (b BTreeCacheWrap) Delete(key []byte) {
	b.bt.ReplaceOrInsert(newDeletedItem(key))
}

// Get reads from btree if there, else backing store
func (b BTreeCacheWrap) Get(key []byte) []byte {
	res := b.bt.Get(bkey{key})
	if res != nil {
		switch t := res.(type) {
		case setItem:
			return t.value
		case deletedItem:
			return nil
		default:
			panic(fmt.Sprintf("Unknown item in btree: %#v", res))
		}
	}
	return b.back.Get(key)
}

// Has reads from btree if there, else backing store
func (b BTreeCacheWrap) Has(key []byte) bool {
	res := b.bt.Get(bkey{key})
	if res != nil {
		switch res.(type) {
		case setItem:
			return true
		case deletedItem:
			return false
		default:
			panic(fmt.Sprintf("Unknown item in btree: %#v", res))
		}
	}
	return b.back.Has(key)
}

// Iterator over a domain of keys in ascending order.
// Combines results from btree and backing store
func (b BTreeCacheWrap) Iterator(start, end []byte) Iterator {
	return NewSliceIterator(b.materialize(start, end, false))
}

// ReverseIterator over a domain of keys in descending order.
// Combines results from btree and backing store
func (b BTreeCacheWrap) ReverseIterator(start, end []byte) Iterator {
	return NewSliceIterator(b.materialize(start, end, true))
}

// materialize merges the buffered writes over the backing range into one
// ordered snapshot. Stores here are memory bound, so producing a slice is
// cheaper than maintaining merge cursors over both sources.
func (b BTreeCacheWrap) materialize(start, end []byte, reverse bool) []Model {
	merged := make(map[string]Model)

	iter := b.back.Iterator(start, end)
	for ; iter.Valid(); iter.Next() {
		k := append([]byte(nil), iter.Key()...)
		merged[string(k)] = Model{Key: k, Value: append([]byte(nil), iter.Value()...)}
	}
	iter.Close()

	visit := func(item btree.Item) bool {
		switch t := item.(type) {
		case setItem:
			merged[string(t.key)] = Model{Key: t.key, Value: t.value}
		case deletedItem:
			delete(merged, string(t.key))
		}
		return true
	}
	switch {
	case start == nil && end == nil:
		b.bt.Ascend(visit)
	case start == nil:
		b.bt.AscendLessThan(bkey{end}, visit)
	case end == nil:
		b.bt.AscendGreaterOrEqual(bkey{start}, visit)
	default:
		b.bt.AscendRange(bkey{start}, bkey{end}, visit)
	}

	models := make([]Model, 0, len(merged))
	for _, m := range merged {
		models = append(models, m)
	}
	sortModels(models, reverse)
	return models
}

func sortModels(models []Model, reverse bool) {
	// insertion sort; ranges in this store are small
	for i := 1; i < len(models); i++ {
		for j := i; j > 0; j-- {
			cmp := bytes.Compare(models[j-1].Key, models[j].Key)
			if (!reverse && cmp <= 0) || (reverse && cmp >= 0) {
				break
			}
			models[j-1], models[j] = models[j], models[j-1]
		}
	}
}

// we enforce all data in our btree implements keyer so we
// can compare nicely
type keyer interface {
	Key() []byte
}

// bkey implements keyer and btree.Item
// and may be used for queries or embedded in data to store
type bkey struct {
	key []byte
}

var _ keyer = bkey{}
var _ btree.Item = bkey{}

func (k bkey) Key() []byte {
	return k.key
}

// Less returns true iff second argument is greater than first
//
// panics if the item to compare doesn't implement keyer.
func (k bkey) Less(item btree.Item) bool {
	cmp := item.(keyer).Key()
	return bytes.Compare(k.key, cmp) < 0
}

type deletedItem struct {
	bkey
}

func newDeletedItem(key []byte) deletedItem {
	return deletedItem{bkey{key}}
}

type setItem struct {
	bkey
	value []byte
}

func newSetItem(key, value []byte) setItem {
	return setItem{bkey{key}, value}
}

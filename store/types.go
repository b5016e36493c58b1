package store

import "github.com/seedswap/seedswap"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = seedswap.ReadOnlyKVStore
type KVStore = seedswap.KVStore
type Iterator = seedswap.Iterator
type Model = seedswap.Model
type CacheableKVStore = seedswap.CacheableKVStore
type KVCacheWrap = seedswap.KVCacheWrap

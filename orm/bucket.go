/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of object.
* It has a primary index (the object key).
* Easy queries for one and iteration over the whole bucket.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/seedswap/seedswap"
	"github.com/seedswap/seedswap/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket is a generic holder that stores data as well
// as references to secondary indexes and sequences.
//
// This is a generic building block that should generally
// be embedded in a type-safe wrapper to ensure all data
// is the same type.
// Bucket is a prefixed subspace of the DB
// proto defines the default Model, all elements of this type
type Bucket struct {
	name   string
	prefix []byte
	proto  Cloneable
}

// NewBucket creates a bucket to store data
func NewBucket(name string, proto Cloneable) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}

	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		proto:  proto,
	}
}

// Name returns the name of the bucket
func (b Bucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including prefix
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// Get one element
func (b Bucket) Get(db seedswap.ReadOnlyKVStore, key []byte) (Object, error) {
	dbkey := b.DBKey(key)
	bz := db.Get(dbkey)
	if bz == nil {
		return nil, nil
	}
	return b.Parse(key, bz)
}

// Has returns true if the given key holds a value in this bucket.
func (b Bucket) Has(db seedswap.ReadOnlyKVStore, key []byte) bool {
	return db.Has(b.DBKey(key))
}

// Parse takes a key and value data and reconstructs the data this Bucket
// would return.
//
// Used internally as part of Get.
// It is exposed mainly as a test helper, but can work for
// any code that wants to parse
func (b Bucket) Parse(key, value []byte) (Object, error) {
	obj := b.proto.Clone()
	if err := obj.Value().Unmarshal(value); err != nil {
		return nil, errors.Wrapf(err, "parsing %s bucket value", b.name)
	}
	obj.SetKey(key)
	return obj, nil
}

// Save will write a model, it must be of the same type as proto
func (b Bucket) Save(db seedswap.KVStore, model Object) error {
	if err := model.Validate(); err != nil {
		return errors.Wrap(err, "invalid object")
	}

	bz, err := model.Value().Marshal()
	if err != nil {
		return err
	}
	db.Set(b.DBKey(model.Key()), bz)
	return nil
}

// Delete will remove the value at a key
func (b Bucket) Delete(db seedswap.KVStore, key []byte) error {
	db.Delete(b.DBKey(key))
	return nil
}

// Iterator returns an iterator over all objects stored in this bucket, in
// ascending key order. Keys returned by the iterator still carry the bucket
// prefix; use Parse with the trimmed key to decode values.
func (b Bucket) Iterator(db seedswap.ReadOnlyKVStore) seedswap.Iterator {
	start, end := prefixRange(b.prefix)
	return db.Iterator(start, end)
}

// All loads every object stored in this bucket.
func (b Bucket) All(db seedswap.ReadOnlyKVStore) ([]Object, error) {
	var objs []Object
	iter := b.Iterator(db)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		key := iter.Key()[len(b.prefix):]
		obj, err := b.Parse(key, iter.Value())
		if err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}
	return objs, nil
}

// prefixRange turns a prefix into (start, end) to create
// a range of all keys starting with the prefix.
func prefixRange(prefix []byte) ([]byte, []byte) {
	if prefix == nil {
		return nil, nil
	}
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for l := len(end); l > 0; l-- {
		if end[l-1] != 0xff {
			end[l-1]++
			return prefix, end[:l]
		}
	}
	return prefix, nil
}

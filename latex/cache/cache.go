// cache.go - Implement the Cache object.
// Copyright (C) 2016  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package cache

import (
	"encoding/base64"
	"sort"
	"time"

	"github.com/go-logr/logr"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/sha3"
)

// DefaultLimit is the default for the total size of the data kept in
// a Cache.
const DefaultLimit = 64 << 20

// Cache keeps the contents of files in memory, so that every file is
// read at most once during a run.  Together with the data, a digest
// of the contents is stored.
type Cache struct {
	entries map[string]*entry
	total   int64
	limit   int64
	hits    int
	pruned  int
	log     logr.Logger
}

// New creates a new, empty cache which holds up to limit bytes.  If
// limit <= 0, DefaultLimit is used.
func New(limit int64, log logr.Logger) *Cache {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Cache{
		entries: make(map[string]*entry),
		limit:   limit,
		log:     log,
	}
}

// Close must be called when the cache is no longer needed.  All data
// is released.
func (c *Cache) Close() {
	c.log.V(1).Info("cache closed",
		"size", byteSize(c.total).String(),
		"objects", len(c.entries),
		"hits", c.hits,
		"pruned", c.pruned)
	c.entries = nil
	c.total = 0
}

// Has returns true, if the cache contains data which has previously
// been stored for the given key.
func (c *Cache) Has(key string) bool {
	_, ok := c.entries[hashKey(key)]
	return ok
}

// Put stores data in the cache.  Any preexisting data using the same
// key is replaced.  If the total size of the cached data exceeds the
// limit, the least recently used entries are removed.
func (c *Cache) Put(key string, data []byte) {
	hash := hashKey(key)
	if old, ok := c.entries[hash]; ok {
		c.total -= old.Size
	}
	e := &entry{
		Data:   data,
		Digest: blake3.Sum256(data),
		Size:   int64(len(data)),
		Time:   time.Now(),
	}
	c.entries[hash] = e
	c.total += e.Size
	c.prune(hash)
}

// Get returns the data stored for key.
func (c *Cache) Get(key string) ([]byte, bool) {
	e, ok := c.entries[hashKey(key)]
	if !ok {
		return nil, false
	}
	c.hits++
	e.Time = time.Now()
	return e.Data, true
}

// Digest returns the BLAKE3 digest of the data stored for key.
func (c *Cache) Digest(key string) ([32]byte, bool) {
	e, ok := c.entries[hashKey(key)]
	if !ok {
		return [32]byte{}, false
	}
	return e.Digest, true
}

// Load returns the data for key.  If the key is not in the cache,
// read is called to obtain the data, and the result is stored.
func (c *Cache) Load(key string, read func() ([]byte, error)) ([]byte, error) {
	if data, ok := c.Get(key); ok {
		return data, nil
	}
	data, err := read()
	if err != nil {
		return nil, err
	}
	c.Put(key, data)
	return data, nil
}

func (c *Cache) prune(keep string) {
	if c.total <= c.limit {
		return
	}

	var of oldestFirst
	for hash, e := range c.entries {
		if hash != keep {
			of = append(of, pruneEntry{key: hash, entry: e})
		}
	}
	sort.Sort(of)

	var pruneBytes int64
	for _, pe := range of {
		if c.total <= c.limit {
			break
		}
		delete(c.entries, pe.key)
		c.total -= pe.Size
		c.pruned++
		pruneBytes += pe.Size
	}
	c.log.V(1).Info("cache pruned", "removed", byteSize(pruneBytes).String())
}

func hashKey(key string) string {
	h := sha3.NewShake128()
	h.Write([]byte(key))
	buf := make([]byte, 15)
	h.Read(buf)
	return base64.RawURLEncoding.EncodeToString(buf)
}

type entry struct {
	Data   []byte
	Digest [32]byte
	Size   int64
	Time   time.Time
}

type pruneEntry struct {
	key string
	*entry
}

type oldestFirst []pruneEntry

func (of oldestFirst) Len() int { return len(of) }
func (of oldestFirst) Less(i, j int) bool {
	return of[i].Time.Before(of[j].Time)
}
func (of oldestFirst) Swap(i, j int) { of[i], of[j] = of[j], of[i] }

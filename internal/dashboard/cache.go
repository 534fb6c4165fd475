package dashboard

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"sync"

	"github.com/spaolacci/murmur3"

	"github.com/priceboard/priceboard/pkg/types"
)

// snapshotCache memoizes render results. The base table is immutable after
// load, so entries never go stale; a size cap bounds memory. Eviction is
// wholesale: when the cap is hit the map is dropped and rebuilt, which is
// fine for a cache whose hit pattern is a handful of hot filter combinations.
type snapshotCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*RenderData
}

func newSnapshotCache(capacity int) *snapshotCache {
	return &snapshotCache{
		capacity: capacity,
		entries:  make(map[string]*RenderData),
	}
}

func (c *snapshotCache) get(key string) (*RenderData, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rd, ok := c.entries[key]
	return rd, ok
}

func (c *snapshotCache) put(key string, rd *RenderData) {
	if c.capacity == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= c.capacity {
		c.entries = make(map[string]*RenderData)
	}
	c.entries[key] = rd
}

func (c *snapshotCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// fingerprint computes a murmur3-128 hash of the canonical encoding of a
// filter spec and sort request. The encoding length-prefixes every string and
// tags every field, so distinct specs cannot collide structurally. The nil
// and empty forms of a selection set encode differently because they mean
// different things.
func fingerprint(spec types.FilterSpec, sort SortRequest) string {
	h := murmur3.New128()

	writeString := func(s string) {
		var lenBuf [4]byte
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(s)))
		h.Write(lenBuf[:])
		h.Write([]byte(s))
	}
	writeStrings := func(tag string, values []string) {
		writeString(tag)
		if values == nil {
			writeString("nil")
			return
		}
		writeString(strconv.Itoa(len(values)))
		for _, v := range values {
			writeString(v)
		}
	}
	writeInts := func(tag string, values []int) {
		writeString(tag)
		if values == nil {
			writeString("nil")
			return
		}
		writeString(strconv.Itoa(len(values)))
		for _, v := range values {
			writeString(strconv.Itoa(v))
		}
	}

	writeString("city")
	writeString(spec.City)
	writeStrings("brands", spec.Brands)
	writeString("price")
	if spec.PriceRange == nil {
		writeString("nil")
	} else {
		writeString(strconv.FormatFloat(spec.PriceRange.Low, 'g', -1, 64))
		writeString(strconv.FormatFloat(spec.PriceRange.High, 'g', -1, 64))
	}
	writeStrings("marketplaces", spec.Marketplaces)
	writeInts("ram", spec.RAMSizes)
	writeInts("storage", spec.StorageCapacities)
	writeString("sort")
	writeString(string(sort.Column))
	writeString(strconv.FormatBool(sort.Desc))

	h1, h2 := h.Sum128()
	return fmt.Sprintf("%016x%016x", h1, h2)
}

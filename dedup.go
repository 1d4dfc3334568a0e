package fault

import (
	"encoding/binary"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// traceCache records which fault sites have already had a trace logged, so the
// expensive stack-capture step runs once per distinct site rather than once per
// occurrence. Keys live for the lifetime of the handler and are never evicted;
// the cache is bounded by the number of distinct fault sites, not fault volume.
type traceCache struct {
	seen map[uint64]struct{}
}

func newTraceCache() *traceCache {
	return &traceCache{seen: make(map[uint64]struct{})}
}

// fingerprint computes the dedup key for a fault site: a hash over the
// category, source location, and message.
func fingerprint(f *Fault) uint64 {
	var cat [4]byte
	binary.LittleEndian.PutUint32(cat[:], uint32(f.Category))

	d := xxhash.New()
	_, _ = d.Write(cat[:])
	_, _ = d.WriteString(f.File)
	_, _ = d.WriteString(strconv.Itoa(f.Line))
	_, _ = d.WriteString(f.Message)
	return d.Sum64()
}

// shouldCapture reports whether a trace should be captured for the fault.
// Returns false when the traced mask does not request tracing for the
// category, or when a trace has already been logged for this site.
//
// shouldCapture does not mark the key: only an actually-logged capture does,
// via record. A fault that screams without logging must not poison the cache,
// so that once ordinary logging resumes for the severity, the first real log
// entry still carries a trace.
func (tc *traceCache) shouldCapture(key uint64, c Category, traced Mask) bool {
	if !traced.Has(c) {
		return false
	}
	_, dup := tc.seen[key]
	return !dup
}

// record marks the site as having had its trace logged.
func (tc *traceCache) record(key uint64) {
	tc.seen[key] = struct{}{}
}

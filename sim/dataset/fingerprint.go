package dataset

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns an xxhash64 digest of rows in order. Datasets with equal
// fingerprints are identical with overwhelming probability; it is used to check
// and report reproducibility of a (samples, seed) pair.
func Fingerprint(rows []Row) uint64 {
	d := xxhash.New()
	buf := make([]byte, 8)
	put := func(v int) {
		binary.LittleEndian.PutUint64(buf, uint64(int64(v)))
		_, _ = d.Write(buf)
	}
	for _, r := range rows {
		put(r.Page)
		put(r.SeqLen)
		put(r.Capacity)
		put(r.InMemory)
		put(r.Recency)
		put(r.FutureFreq)
		_, _ = d.WriteString(r.Policy)
		put(r.Fault)
	}
	return d.Sum64()
}

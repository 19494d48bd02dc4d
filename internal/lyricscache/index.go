package lyricscache

// Stats summarizes one decode pass.
type Stats struct {
	Lines      int `json:"lines"`
	Blank      int `json:"blank"`
	MissingKey int `json:"missing_key"`
	Superseded int `json:"superseded"`
}

// Index holds one record per canonical key. A later record for a key replaces
// the earlier one and moves the key to the position of that later write, so
// Records follows the order in which the surviving lines were written.
type Index struct {
	// order holds one slot per Put; only the slot recorded in last is live.
	order   []string
	last    map[string]int
	records map[string]Record
	stats   Stats
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		last:    make(map[string]int),
		records: make(map[string]Record),
	}
}

// Put inserts or replaces the record for rec.CanonicalKey.
func (ix *Index) Put(rec Record) {
	if _, ok := ix.records[rec.CanonicalKey]; ok {
		ix.stats.Superseded++
	}
	ix.last[rec.CanonicalKey] = len(ix.order)
	ix.order = append(ix.order, rec.CanonicalKey)
	ix.records[rec.CanonicalKey] = rec
}

// Get returns the current record for key.
func (ix *Index) Get(key string) (Record, bool) {
	rec, ok := ix.records[key]
	return rec, ok
}

// Has reports whether key is indexed.
func (ix *Index) Has(key string) bool {
	_, ok := ix.records[key]
	return ok
}

// Len returns the number of distinct keys.
func (ix *Index) Len() int {
	return len(ix.records)
}

// Records returns the indexed records ordered by each key's last write.
func (ix *Index) Records() []Record {
	out := make([]Record, 0, len(ix.records))
	for i, key := range ix.order {
		if ix.last[key] == i {
			out = append(out, ix.records[key])
		}
	}
	return out
}

// Stats returns counters gathered while decoding.
func (ix *Index) Stats() Stats {
	return ix.stats
}

// FindByURI returns every indexed record whose track URI equals uri.
func (ix *Index) FindByURI(uri string) []Record {
	var out []Record
	for _, rec := range ix.Records() {
		if rec.URI() == uri {
			out = append(out, rec)
		}
	}
	return out
}

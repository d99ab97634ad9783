package builder

import (
	sorted "github.com/tobshub/go-sortedmap"
)

type indexEntry struct {
	Key   KeyValue
	Tuple Tuple
}

func indexEntryComparisonFunc(a, b indexEntry) bool {
	return a.Key.Compare(b.Key) < 0
}

// PrimaryIndex maps primary key values to the tuple stored under them,
// kept in key order.
type PrimaryIndex struct {
	Map *sorted.SortedMap[string, indexEntry]
}

func NewPrimaryIndex() *PrimaryIndex {
	return &PrimaryIndex{sorted.New[string, indexEntry](0, indexEntryComparisonFunc)}
}

// Put stores tup under key. An existing entry with an equal key is replaced.
func (i *PrimaryIndex) Put(key KeyValue, tup Tuple) {
	k := key.Encode()
	e := indexEntry{key, tup}
	if !i.Map.Insert(k, e) {
		i.Map.Replace(k, e)
	}
}

func (i *PrimaryIndex) Get(key KeyValue) (Tuple, bool) {
	e, ok := i.Map.Get(key.Encode())
	if !ok {
		return nil, false
	}
	return e.Tuple, true
}

func (i *PrimaryIndex) Len() int { return i.Map.Len() }

// Keys returns the indexed keys in ascending order.
func (i *PrimaryIndex) Keys() []KeyValue {
	keys := []KeyValue{}
	if i.Len() == 0 {
		return keys
	}
	iterCh, err := i.Map.IterCh()
	if err != nil {
		return keys
	}
	for rec := range iterCh.Records() {
		keys = append(keys, rec.Val.Key)
	}
	return keys
}

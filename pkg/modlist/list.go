package modlist

// Entry is one mod of a preset
type Entry struct {
	Key string `json:"key" yaml:"key" toml:"key"`
	ID  string `json:"id" yaml:"id" toml:"id"`
}

// List maps mod keys to Workshop IDs and remembers insertion order.
// The zero value is ready to use.
type List struct {
	keys []string
	ids  map[string]string
}

// NewList returns a List holding entries in the given order
func NewList(entries ...Entry) *List {
	l := &List{}
	for _, e := range entries {
		l.Set(e.Key, e.ID)
	}
	return l
}

// Set inserts key or, when it is already present, replaces its ID in place.
// It reports whether the key was new.
func (l *List) Set(key, id string) bool {
	if l.ids == nil {
		l.ids = make(map[string]string)
	}
	_, exists := l.ids[key]
	l.ids[key] = id
	if !exists {
		l.keys = append(l.keys, key)
	}
	return !exists
}

// Get returns the ID stored for key
func (l *List) Get(key string) (string, bool) {
	id, ok := l.ids[key]
	return id, ok
}

// Len returns the number of entries
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.keys)
}

// Keys returns the keys in insertion order
func (l *List) Keys() []string {
	if l == nil {
		return nil
	}
	out := make([]string, len(l.keys))
	copy(out, l.keys)
	return out
}

// Entries returns the entries in insertion order
func (l *List) Entries() []Entry {
	if l == nil {
		return nil
	}
	out := make([]Entry, 0, len(l.keys))
	for _, k := range l.keys {
		out = append(out, Entry{Key: k, ID: l.ids[k]})
	}
	return out
}

// Map returns a copy of the entries as a plain map
func (l *List) Map() map[string]string {
	out := make(map[string]string, l.Len())
	for _, e := range l.Entries() {
		out[e.Key] = e.ID
	}
	return out
}

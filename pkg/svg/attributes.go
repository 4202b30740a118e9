package svg

import "iter"

// Attributes is an insertion-ordered attribute store. Values are held in
// their escaped form.
//
// The zero value is not used directly: an Element allocates its store on the
// first attribute write, and callers only receive read access.
type Attributes struct {
	keys   []string
	values map[string]Value
}

func newAttributes() *Attributes {
	return &Attributes{values: make(map[string]Value)}
}

// set stores v under key. A repeated key keeps its original position.
func (a *Attributes) set(key string, v Value) {
	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.values[key] = v
}

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	if a == nil {
		return 0
	}
	return len(a.keys)
}

// Get returns the stored (escaped) value for key.
func (a *Attributes) Get(key string) (Value, bool) {
	if a == nil {
		return Value{}, false
	}
	v, ok := a.values[key]
	return v, ok
}

// Has reports whether key is set.
func (a *Attributes) Has(key string) bool {
	_, ok := a.Get(key)
	return ok
}

// Keys returns the attribute names in insertion order.
func (a *Attributes) Keys() []string {
	if a == nil {
		return nil
	}
	keys := make([]string, len(a.keys))
	copy(keys, a.keys)
	return keys
}

// All iterates over the attributes in insertion order.
func (a *Attributes) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if a == nil {
			return
		}
		for _, key := range a.keys {
			if !yield(key, a.values[key]) {
				return
			}
		}
	}
}

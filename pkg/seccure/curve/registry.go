package curve

import (
	"fmt"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"
)

// DefaultName selects the curve used when a caller does not name one.
const DefaultName = "p160"

type cached struct {
	params *Params
	err    error
}

// cache holds parsed built-in curves keyed by their full table name. Entries
// are never evicted; a curve is parsed at most once per process.
var cache = xsync.NewMapOf[string, cached]()

func load(def Definition) (*Params, error) {
	e, _ := cache.LoadOrCompute(def.Name, func() cached {
		p, err := New(def)
		return cached{params: p, err: err}
	})
	return e.params, e.err
}

// ByName returns the first built-in curve whose table name contains name.
func ByName(name string) (*Params, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrUnknownCurve)
	}
	for _, def := range definitions {
		if strings.Contains(def.Name, name) {
			return load(def)
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCurve, name)
}

// ByPKLenCompact returns the first built-in curve whose compact public key is
// n characters long.
func ByPKLenCompact(n int) (*Params, error) {
	for _, def := range definitions {
		p, err := load(def)
		if err != nil {
			return nil, err
		}
		if p.PKLenCompact == n {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: no curve with %d character public keys", ErrUnknownCurve, n)
}

// Names lists the canonical built-in curve names in table order.
func Names() []string {
	names := make([]string, 0, len(definitions))
	for _, def := range definitions {
		names = append(names, strings.SplitN(def.Name, "/", 2)[0])
	}
	return names
}

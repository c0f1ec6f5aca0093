package treesitter

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// queryKind names the two structural queries a Language carries.
type queryKind int

const (
	queryHoverable queryKind = iota
	queryScope
)

func (k queryKind) String() string {
	if k == queryScope {
		return "scope"
	}
	return "hoverable"
}

// defaultQueryCacheSize comfortably exceeds languages x query kinds, so
// compiled queries are effectively never evicted while in use.
const defaultQueryCacheSize = 64

type queryKey struct {
	lang string
	kind queryKind
}

// queryCache holds compiled queries. Compilation is the expensive step and
// a compiled query can be shared by any number of cursors.
type queryCache struct {
	mu    sync.Mutex
	cache *lru.Cache[queryKey, *tree_sitter.Query]
}

func newQueryCache(size int) *queryCache {
	c, err := lru.NewWithEvict[queryKey, *tree_sitter.Query](size, func(_ queryKey, q *tree_sitter.Query) {
		q.Close()
	})
	if err != nil {
		// Only a non-positive size fails.
		panic(err)
	}
	return &queryCache{cache: c}
}

// get returns the compiled query of the given kind for l.
func (c *queryCache) get(l Language, grammar *tree_sitter.Language, kind queryKind) (*tree_sitter.Query, error) {
	key := queryKey{lang: l.Name(), kind: kind}

	c.mu.Lock()
	defer c.mu.Unlock()
	if q, ok := c.cache.Get(key); ok {
		return q, nil
	}

	src := l.HoverableQuery()
	if kind == queryScope {
		src = l.ScopeQuery()
	}
	q, qerr := tree_sitter.NewQuery(grammar, src)
	if qerr != nil {
		return nil, &QueryError{Language: l.Name(), Query: kind.String(), Err: qerr}
	}
	c.cache.Add(key, q)
	return q, nil
}

// Len returns the number of compiled queries held.
func (c *queryCache) Len() int {
	return c.cache.Len()
}

package weave

import (
	"fmt"
)

// Query modifiers are appended to the path after a "?".
const (
	KeyQueryMod    = ""
	PrefixQueryMod = "prefix"
)

// Model is a single key value pair returned by a query.
type Model struct {
	Key   []byte
	Value []byte
}

func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler answers queries for one path.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister adds the query handlers of an extension.
type QueryRegister func(QueryRouter)

// QueryRouter maps query paths to handlers.
type QueryRouter struct {
	routes map[string]QueryHandler
}

func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: make(map[string]QueryHandler)}
}

func (r QueryRouter) RegisterAll(regs ...QueryRegister) {
	for _, reg := range regs {
		reg(r)
	}
}

// Register panics if path already has a handler.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, taken := r.routes[path]; taken {
		panic(fmt.Sprintf("query path %q registered twice", path))
	}
	r.routes[path] = h
}

// Handler returns nil for an unknown path.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}

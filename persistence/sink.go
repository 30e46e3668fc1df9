package persistence

import "github.com/lukefi/metsi-go/stand"

// Sink is the evaluator's persistence callback target (§4.7): Persist is
// invoked once per visited node, in pre-order, with that node's path
// identifier and post-treatment payload. Both backends commit each Persist
// call in its own transaction; Close releases the underlying database.
//
// A Sink's Persist method has the exact shape eventtree.PersistFunc wants:
// callers pass sink.Persist directly to eventtree.Evaluate.
type Sink interface {
	Persist(path string, p *stand.Payload) error
	Close() error
}

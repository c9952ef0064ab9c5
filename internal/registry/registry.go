// Package registry mirrors the server's indexed-document set locally.
package registry

import "sync"

// Document is one indexed document as reported by the server.
// The ID is assigned server-side and stable; filenames are display names
// and not guaranteed unique.
type Document struct {
	ID       int64  `json:"id"`
	Filename string `json:"filename"`
}

// Registry holds the local mirror of the server's document set. Membership
// reflects the last successful refresh plus any confirmed deletions; it is
// never mutated optimistically before the server confirms.
type Registry struct {
	mu   sync.RWMutex
	docs []Document
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{}
}

// Replace swaps the entire set with the server's authoritative list.
// Full resync, not a merge: documents added or removed by other clients
// are picked up here.
func (r *Registry) Replace(docs []Document) {
	r.mu.Lock()
	r.docs = append([]Document(nil), docs...)
	r.mu.Unlock()
}

// Remove drops one document locally. Called only after the server has
// confirmed the deletion; no refresh is required.
func (r *Registry) Remove(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.docs[:0]
	for _, d := range r.docs {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	r.docs = kept
}

// Documents returns a copy of the current set in server order.
func (r *Registry) Documents() []Document {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Document, len(r.docs))
	copy(out, r.docs)
	return out
}

// Get returns the document with the given ID, if present.
func (r *Registry) Get(id int64) (Document, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.docs {
		if d.ID == id {
			return d, true
		}
	}
	return Document{}, false
}

// Len returns the number of documents.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.docs)
}

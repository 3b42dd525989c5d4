// Package store implements the in-memory document store backing the feed
// API: keyed collections with CRUD-by-id semantics and store-assigned
// integer ids. Documents are deep-copied at the collection boundary so
// callers never alias stored state; mutation happens by Read, modify, Write.
package store

import (
	"fmt"
	"reflect"
	"sync"

	"mockbook/internal/observability"
	"mockbook/models"

	"github.com/jinzhu/copier"
)

// Document is implemented by every stored document type.
type Document interface {
	DocID() int
	SetDocID(int)
}

// NotFoundError reports a read, write, or delete against a missing document.
type NotFoundError struct {
	Collection string
	ID         int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s document %d not found", e.Collection, e.ID)
}

// IsNotFound reports whether err is a store NotFoundError.
func IsNotFound(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// Collection is a single keyed collection of documents. Access is guarded by
// an RWMutex because the HTTP layer serves requests concurrently; each
// operation is atomic with respect to the collection.
type Collection[T Document] struct {
	name   string
	mu     sync.RWMutex
	docs   map[int]T
	nextID int
}

// NewCollection creates an empty collection with ids starting at 1.
func NewCollection[T Document](name string) *Collection[T] {
	return &Collection[T]{
		name:   name,
		docs:   make(map[int]T),
		nextID: 1,
	}
}

// Name returns the collection name used in snapshots and errors.
func (c *Collection[T]) Name() string { return c.name }

// Read returns a copy of the document with the given id.
func (c *Collection[T]) Read(id int) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	observability.StoreOperations.WithLabelValues(c.name, "read").Inc()

	doc, ok := c.docs[id]
	if !ok {
		var zero T
		return zero, &NotFoundError{Collection: c.name, ID: id}
	}
	return clone(doc), nil
}

// Write replaces the stored document carrying the same id. The document must
// already exist.
func (c *Collection[T]) Write(doc T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	observability.StoreOperations.WithLabelValues(c.name, "write").Inc()

	id := doc.DocID()
	if _, ok := c.docs[id]; !ok {
		return &NotFoundError{Collection: c.name, ID: id}
	}
	c.docs[id] = clone(doc)
	return nil
}

// Add stores the document under a fresh id and returns a copy with the id
// populated.
func (c *Collection[T]) Add(doc T) T {
	c.mu.Lock()
	defer c.mu.Unlock()

	observability.StoreOperations.WithLabelValues(c.name, "add").Inc()

	stored := clone(doc)
	stored.SetDocID(c.nextID)
	c.nextID++
	c.docs[stored.DocID()] = stored
	return clone(stored)
}

// Delete removes the document with the given id.
func (c *Collection[T]) Delete(id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	observability.StoreOperations.WithLabelValues(c.name, "delete").Inc()

	if _, ok := c.docs[id]; !ok {
		return &NotFoundError{Collection: c.name, ID: id}
	}
	delete(c.docs, id)
	return nil
}

// All returns a copy of every document in the collection, keyed by id. Used
// by sweep operations.
func (c *Collection[T]) All() map[int]T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	observability.StoreOperations.WithLabelValues(c.name, "list").Inc()

	out := make(map[int]T, len(c.docs))
	for id, doc := range c.docs {
		out[id] = clone(doc)
	}
	return out
}

// Len returns the number of documents in the collection.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.docs)
}

// load replaces the collection contents and advances the id counter past the
// highest loaded id.
func (c *Collection[T]) load(docs []T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.docs = make(map[int]T, len(docs))
	c.nextID = 1
	for _, doc := range docs {
		stored := clone(doc)
		c.docs[stored.DocID()] = stored
		if stored.DocID() >= c.nextID {
			c.nextID = stored.DocID() + 1
		}
	}
}

// clone deep-copies a document so stored and returned values never share
// slices.
func clone[T Document](doc T) T {
	out := reflect.New(reflect.TypeOf(doc).Elem()).Interface().(T)
	if err := copier.CopyWithOption(out, doc, copier.Option{DeepCopy: true}); err != nil {
		panic(fmt.Sprintf("store: clone %T: %v", doc, err))
	}
	return out
}

// Data is the full contents of a store, used for fixtures and snapshots.
type Data struct {
	Users     []*models.User
	Feeds     []*models.Feed
	FeedItems []*models.FeedItem
}

// Store groups the three collections the feed API operates on.
type Store struct {
	Users     *Collection[*models.User]
	Feeds     *Collection[*models.Feed]
	FeedItems *Collection[*models.FeedItem]
}

// New creates an empty store.
func New() *Store {
	return &Store{
		Users:     NewCollection[*models.User]("users"),
		Feeds:     NewCollection[*models.Feed]("feeds"),
		FeedItems: NewCollection[*models.FeedItem]("feedItems"),
	}
}

// Reset replaces the entire store contents with the given data. Used by the
// resetdb endpoint and by tests that need a fresh fixture.
func (s *Store) Reset(d *Data) {
	s.Users.load(d.Users)
	s.Feeds.load(d.Feeds)
	s.FeedItems.load(d.FeedItems)
}

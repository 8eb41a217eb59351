package devserver

import (
	"context"
	"errors"
	"fmt"
)

// Collection names, matching the REST resource paths
const (
	CollectionTestCases  = "testCases"
	CollectionTestSuites = "testSuites"
	CollectionUsers      = "users"
)

// Collections lists every collection the backend serves
var Collections = []string{CollectionTestCases, CollectionTestSuites, CollectionUsers}

// ErrNotFound is returned when a document id does not exist in a collection
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when creating a document whose id is already taken
var ErrConflict = errors.New("already exists")

// Document is a flat JSON object. The backend stores whatever attributes the
// client sends and only owns the "id" field.
type Document map[string]any

// ID returns the document id as a string
func (d Document) ID() string {
	switch v := d["id"].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func (d Document) clone() Document {
	c := make(Document, len(d))
	for k, v := range d {
		c[k] = v
	}
	return c
}

// Repository stores documents per collection in insertion order
type Repository interface {
	List(ctx context.Context, collection string) ([]Document, error)
	Get(ctx context.Context, collection, id string) (Document, error)
	// Create stores doc, assigning an id when it has none
	Create(ctx context.Context, collection string, doc Document) (Document, error)
	// Replace overwrites the whole document with the given id
	Replace(ctx context.Context, collection, id string, doc Document) (Document, error)
	Delete(ctx context.Context, collection, id string) error
	Close() error
}

func isKnownCollection(name string) bool {
	for _, c := range Collections {
		if c == name {
			return true
		}
	}
	return false
}

// Package store persists named layout plans so expensive comparison builds
// can be recalled by id.
//
// Two backends are provided: [MongoStore] for server deployments and
// [MemoryStore] for tests and single-process usage. Documents are
// content-complete; reading one back requires no recomputation.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cardgrid/cardgrid/pkg/combin"
	"github.com/cardgrid/cardgrid/pkg/layout"
)

// Document is a saved layout plan with the inputs that produced it.
type Document struct {
	ID        uuid.UUID   `json:"id" bson:"_id"`
	Name      string      `json:"name" bson:"name"`
	N         int         `json:"n" bson:"n"`
	R         int         `json:"r" bson:"r"`
	Mode      combin.Mode `json:"mode,omitempty" bson:"mode,omitempty"`
	Plan      layout.Plan `json:"plan" bson:"plan"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
}

// Store is the interface all persistence backends implement.
type Store interface {
	// Save upserts a document. A zero ID is assigned and a zero CreatedAt is
	// stamped before writing; both mutations are visible to the caller.
	Save(ctx context.Context, doc *Document) error

	// Get retrieves a document by id. Returns a NOT_FOUND error when absent.
	Get(ctx context.Context, id uuid.UUID) (*Document, error)

	// List returns up to limit documents, newest first. A limit of zero or
	// less returns all documents.
	List(ctx context.Context, limit int) ([]Document, error)

	// Delete removes a document by id. Returns a NOT_FOUND error when absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// prepare fills in the generated fields of a document before a save.
func prepare(doc *Document) {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
}

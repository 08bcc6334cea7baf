// Package firestore contains a client.Repository implementation
// targeted to Google Cloud Firestore.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/get-eventually/go-command/client"
	"github.com/get-eventually/go-command/serde"
)

// DefaultCollection is the collection used when ClientRepository.Collection
// is not specified.
const DefaultCollection = "Clients"

// Document fields used by ClientRepository.
const (
	clientIDField = "client_id"
	payloadField  = "payload"
)

//nolint:exhaustruct // Only used for interface assertion.
var _ client.Repository = ClientRepository{}

// ClientRepository is a client.Repository implementation storing Clients
// as Firestore documents, keyed by their ID.
type ClientRepository struct {
	Client *firestore.Client
	Serde  serde.Bytes[*client.Client]

	// Collection is the collection holding the Client documents.
	// If unspecified, DefaultCollection is used.
	Collection string
}

func (r ClientRepository) doc(id client.ID) *firestore.DocumentRef {
	collection := r.Collection
	if collection == "" {
		collection = DefaultCollection
	}

	return r.Client.Collection(collection).Doc(id.String())
}

// Get implements the client.Getter interface.
func (r ClientRepository) Get(ctx context.Context, id client.ID) (*client.Client, error) {
	doc, err := r.doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, client.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("firestore.ClientRepository.Get: failed to get client %s, %w", id, err)
	}

	payload, ok := doc.Data()[payloadField].([]byte)
	if !ok {
		return nil, fmt.Errorf("firestore.ClientRepository.Get: client %s has no valid payload", id)
	}

	c, err := r.Serde.Deserialize(payload)
	if err != nil {
		return nil, fmt.Errorf("firestore.ClientRepository.Get: failed to deserialize client %s, %w", id, err)
	}

	return c, nil
}

// Add implements the client.Adder interface.
//
// Documents are created with a precondition on their absence,
// so existing Clients are never overwritten.
func (r ClientRepository) Add(ctx context.Context, c *client.Client) error {
	payload, err := r.Serde.Serialize(c)
	if err != nil {
		return fmt.Errorf("firestore.ClientRepository.Add: failed to serialize client %s, %w", c.ID, err)
	}

	_, err = r.doc(c.ID).Create(ctx, map[string]any{
		clientIDField: int64(c.ID),
		payloadField:  payload,
	})

	if status.Code(err) == codes.AlreadyExists {
		return fmt.Errorf("firestore.ClientRepository.Add: failed to add client %s, %w", c.ID, client.ErrAlreadyExists)
	}

	if err != nil {
		return fmt.Errorf("firestore.ClientRepository.Add: failed to add client %s, %w", c.ID, err)
	}

	return nil
}

// Remove implements the client.Remover interface.
func (r ClientRepository) Remove(ctx context.Context, id client.ID) error {
	if _, err := r.doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("firestore.ClientRepository.Remove: failed to remove client %s, %w", id, err)
	}

	return nil
}

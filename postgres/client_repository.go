// Package postgres contains a client.Repository implementation
// targeted to PostgreSQL databases.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/get-eventually/go-command/client"
	"github.com/get-eventually/go-command/postgres/internal"
	"github.com/get-eventually/go-command/serde"
)

var _ client.Repository = new(ClientRepository)

// ClientRepository is a client.Repository implementation storing Clients
// in a PostgreSQL table, serialized with the provided serde.
//
// Run RunMigrations before using this type.
//
// Use NewClientRepository to create a new instance of this type.
type ClientRepository struct {
	conn      *pgxpool.Pool
	serde     serde.Bytes[*client.Client]
	tableName string
}

// NewClientRepository returns a new ClientRepository using the provided
// connection pool, and serializing Clients with the provided serde
// (e.g. client.JSONSerde).
func NewClientRepository(
	conn *pgxpool.Pool,
	clientSerde serde.Bytes[*client.Client],
	options ...Option[*ClientRepository],
) *ClientRepository {
	repository := &ClientRepository{
		conn:      conn,
		serde:     clientSerde,
		tableName: DefaultClientsTableName,
	}

	for _, opt := range options {
		opt.apply(repository)
	}

	return repository
}

func (r *ClientRepository) table() string {
	return pgx.Identifier{r.tableName}.Sanitize()
}

// Get implements the client.Getter interface.
func (r *ClientRepository) Get(ctx context.Context, id client.ID) (*client.Client, error) {
	var state []byte

	err := r.conn.
		QueryRow(ctx, fmt.Sprintf("SELECT state FROM %s WHERE client_id = $1", r.table()), int64(id)).
		Scan(&state)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, client.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("postgres.ClientRepository.Get: failed to fetch client %s, %w", id, err)
	}

	c, err := r.serde.Deserialize(state)
	if err != nil {
		return nil, fmt.Errorf("postgres.ClientRepository.Get: failed to deserialize client %s, %w", id, err)
	}

	return c, nil
}

// Add implements the client.Adder interface.
//
// client.ErrAlreadyExists is returned when the primary key is already in use.
func (r *ClientRepository) Add(ctx context.Context, c *client.Client) error {
	state, err := r.serde.Serialize(c)
	if err != nil {
		return fmt.Errorf("postgres.ClientRepository.Add: failed to serialize client %s, %w", c.ID, err)
	}

	txOptions := pgx.TxOptions{
		IsoLevel:       pgx.ReadCommitted,
		AccessMode:     pgx.ReadWrite,
		DeferrableMode: pgx.NotDeferrable,
	}

	err = internal.RunTransaction(ctx, r.conn, txOptions, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(
			ctx,
			fmt.Sprintf("INSERT INTO %s (client_id, state) VALUES ($1, $2)", r.table()),
			int64(c.ID), state,
		)

		return err
	})

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("postgres.ClientRepository.Add: failed to add client %s, %w", c.ID, client.ErrAlreadyExists)
	}

	if err != nil {
		return fmt.Errorf("postgres.ClientRepository.Add: failed to add client %s, %w", c.ID, err)
	}

	return nil
}

// Remove implements the client.Remover interface.
func (r *ClientRepository) Remove(ctx context.Context, id client.ID) error {
	if _, err := r.conn.Exec(
		ctx,
		fmt.Sprintf("DELETE FROM %s WHERE client_id = $1", r.table()),
		int64(id),
	); err != nil {
		return fmt.Errorf("postgres.ClientRepository.Remove: failed to remove client %s, %w", id, err)
	}

	return nil
}

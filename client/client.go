// Package client contains the Client entity, the Repository abstraction used
// to store Clients, and the Commands that mutate a Repository.
package client

import (
	"maps"
	"strconv"
)

// ID is the unique identifier of a Client.
type ID int64

// String returns the decimal representation of the ID.
func (id ID) String() string { return strconv.FormatInt(int64(id), 10) }

// Client is a customer record, identified by its ID.
//
// The ID must not change once the Client has been handed over to a Repository:
// lookups and equality are based on the ID only.
type Client struct {
	ID         ID
	Name       string
	Email      string
	Attributes map[string]string
}

// Same reports whether the two Clients share the same identity.
func (c *Client) Same(other *Client) bool {
	if c == nil || other == nil {
		return c == other
	}

	return c.ID == other.ID
}

// Clone returns a deep copy of the Client.
func (c *Client) Clone() *Client {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Attributes = maps.Clone(c.Attributes)

	return &clone
}

package graph

import (
	"context"
	"errors"
	"fmt"
)

// Client is the narrow surface the transfer repository needs from the graph database.
type Client interface {
	ExecuteWrite(ctx context.Context, cypher string, params map[string]any) (Result, error)
	ExecuteRead(ctx context.Context, cypher string, params map[string]any) (Result, error)
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// Result is a fully consumed query response.
type Result struct {
	Records []Record
}

// First returns the first record, if any.
func (r Result) First() (Record, bool) {
	if len(r.Records) == 0 {
		return nil, false
	}
	return r.Records[0], true
}

// Record maps returned column names to values.
type Record map[string]any

// Options configures a Bolt connection.
type Options struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

// ErrMissingURI indicates the graph URI is not provided.
var ErrMissingURI = errors.New("graph URI is required")

// Validate reports configuration that cannot produce a working client.
func (o Options) Validate() error {
	if o.URI == "" {
		return ErrMissingURI
	}
	if o.Password != "" && o.Username == "" {
		return fmt.Errorf("graph password set without a username")
	}
	return nil
}

// Probe verifies connectivity. A nil client has nothing to probe and is healthy.
func Probe(ctx context.Context, c Client) error {
	if c == nil {
		return nil
	}
	if err := c.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("graph unreachable: %w", err)
	}
	return nil
}

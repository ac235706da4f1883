package graph

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by a MemoryClient used after Close.
var ErrClosed = errors.New("graph client closed")

// AccessMode distinguishes reads from writes in recorded calls.
type AccessMode string

const (
	AccessRead  AccessMode = "read"
	AccessWrite AccessMode = "write"
)

// ExecutedQuery is one recorded statement.
type ExecutedQuery struct {
	Mode   AccessMode
	Query  string
	Params map[string]any
}

// MemoryClient records statements and replays queued results. Repository and ingest
// tests use it in place of a running database.
type MemoryClient struct {
	mu           sync.Mutex
	calls        []ExecutedQuery
	queued       map[AccessMode][]Result
	err          error
	connectivity error
	closed       bool
}

// NewMemoryClient returns an empty client.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{queued: make(map[AccessMode][]Result)}
}

// WithError makes every subsequent statement fail with err.
func (m *MemoryClient) WithError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// WithConnectivityError forces VerifyConnectivity to return err.
func (m *MemoryClient) WithConnectivityError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectivity = err
	return m
}

// PushReadResult queues res for the next ExecuteRead.
func (m *MemoryClient) PushReadResult(res Result) {
	m.push(AccessRead, res)
}

// PushWriteResult queues res for the next ExecuteWrite.
func (m *MemoryClient) PushWriteResult(res Result) {
	m.push(AccessWrite, res)
}

func (m *MemoryClient) push(mode AccessMode, res Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queued[mode] = append(m.queued[mode], res)
}

func (m *MemoryClient) ExecuteWrite(_ context.Context, cypher string, params map[string]any) (Result, error) {
	return m.execute(AccessWrite, cypher, params)
}

func (m *MemoryClient) ExecuteRead(_ context.Context, cypher string, params map[string]any) (Result, error) {
	return m.execute(AccessRead, cypher, params)
}

func (m *MemoryClient) execute(mode AccessMode, cypher string, params map[string]any) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return Result{}, ErrClosed
	}
	if m.err != nil {
		return Result{}, m.err
	}

	m.calls = append(m.calls, ExecutedQuery{Mode: mode, Query: cypher, Params: cloneMap(params)})

	queue := m.queued[mode]
	if len(queue) == 0 {
		return Result{}, nil
	}
	m.queued[mode] = queue[1:]
	return queue[0], nil
}

func (m *MemoryClient) VerifyConnectivity(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	return m.connectivity
}

func (m *MemoryClient) Close(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MemoryClient) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// WriteCalls returns the recorded writes in order.
func (m *MemoryClient) WriteCalls() []ExecutedQuery {
	return m.callsFor(AccessWrite)
}

// ReadCalls returns the recorded reads in order.
func (m *MemoryClient) ReadCalls() []ExecutedQuery {
	return m.callsFor(AccessRead)
}

func (m *MemoryClient) callsFor(mode AccessMode) []ExecutedQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ExecutedQuery
	for _, c := range m.calls {
		if c.Mode == mode {
			out = append(out, c)
		}
	}
	return out
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

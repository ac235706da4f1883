package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/vanshika/fintrace/investigator/internal/domain"
)

// TaskError accumulates the per-transfer errors of one bulk ingestion.
type TaskError struct {
	Errors []error
}

func (e *TaskError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no errors"
	case 1:
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d transfers failed:", len(e.Errors))
	for _, err := range e.Errors {
		b.WriteString(" ")
		b.WriteString(err.Error())
		b.WriteString(";")
	}
	return b.String()
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *TaskError) Unwrap() []error {
	return e.Errors
}

func (e *TaskError) append(err error) {
	if err == nil {
		return
	}
	e.Errors = append(e.Errors, err)
}

func (e *TaskError) asError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// BulkIngestor writes report transfers to the graph using a worker pool.
type BulkIngestor struct {
	service *ReportService
	workers int
}

// NewBulkIngestor creates a new BulkIngestor instance with the provided concurrency.
func NewBulkIngestor(service *ReportService, workers int) *BulkIngestor {
	if workers <= 0 {
		workers = 4
	}
	return &BulkIngestor{
		service: service,
		workers: workers,
	}
}

// IngestTransfers stores inputs concurrently and returns how many were written.
// Failures are collected into a *TaskError; cancellation is returned as the context error.
func (bi *BulkIngestor) IngestTransfers(ctx context.Context, inputs []TransferInput) (int, error) {
	var stored atomic.Int64
	err := bi.run(ctx, len(inputs), func(idx int) error {
		in := inputs[idx]
		if err := bi.service.UpsertTransfer(ctx, in); err != nil {
			return fmt.Errorf("transfer %d (%s -> %s): %w", in.ID, in.From, in.To, err)
		}
		stored.Add(1)
		return nil
	})
	return int(stored.Load()), err
}

// IngestPayload stores every transfer of an analysis payload under its wallet.
func (bi *BulkIngestor) IngestPayload(ctx context.Context, p domain.Payload) (int, error) {
	inputs := TransferInputs(p)
	n, err := bi.IngestTransfers(ctx, inputs)
	bi.service.logger.Debug("payload ingested",
		"wallet", p.Wallet,
		"report", p.ReportID,
		"stored", n,
		"total", len(inputs),
	)
	return n, err
}

func (bi *BulkIngestor) run(ctx context.Context, total int, workerFn func(idx int) error) error {
	if total == 0 {
		return nil
	}
	indexCh := make(chan int)
	errCh := make(chan error, total)
	var wg sync.WaitGroup

	for i := 0; i < bi.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexCh {
				if err := workerFn(idx); err != nil {
					errCh <- err
				}
			}
		}()
	}

	dispatched := 0
dispatch:
	for ; dispatched < total; dispatched++ {
		select {
		case indexCh <- dispatched:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(indexCh)
	wg.Wait()
	close(errCh)

	if dispatched < total {
		return fmt.Errorf("ingest stopped after %d of %d transfers: %w", dispatched, total, ctx.Err())
	}

	var taskErr TaskError
	for err := range errCh {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		taskErr.append(err)
	}
	return taskErr.asError()
}

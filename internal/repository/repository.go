package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vanshika/fintrace/investigator/internal/domain"
	"github.com/vanshika/fintrace/investigator/internal/graph"
	"github.com/vanshika/fintrace/investigator/internal/payload"
)

// ErrWalletRequired is returned when a query or write has no wallet address.
var ErrWalletRequired = errors.New("wallet address is required")

const (
	defaultMaxHops       = 3
	defaultTransferLimit = 500
)

// FetchOptions bounds the neighbourhood read around a focal wallet.
type FetchOptions struct {
	MaxHops int
	Limit   int
}

// Repository encapsulates graph persistence operations.
type Repository struct {
	client graph.Client
}

// New instantiates a Repository backed by the supplied graph client.
func New(client graph.Client) *Repository {
	return &Repository{client: client}
}

// EnsureSchema creates the wallet uniqueness constraint.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.client.ExecuteWrite(ctx, walletConstraintCypher, nil); err != nil {
		return fmt.Errorf("ensure wallet constraint: %w", err)
	}
	return nil
}

// UpsertTransfer stores one movement as a SENT relationship between wallet nodes. The
// relationship is keyed by the reporting wallet and the transfer id so re-ingesting a
// report is idempotent.
func (r *Repository) UpsertTransfer(ctx context.Context, wallet string, tx domain.Transfer) error {
	if wallet == "" {
		return ErrWalletRequired
	}
	if tx.From == "" || tx.To == "" {
		return errors.New("both sender and receiver addresses are required")
	}

	params := map[string]any{
		"from":  tx.From,
		"to":    tx.To,
		"ref":   transferRef(wallet, tx.ID),
		"props": transferProperties(tx),
	}

	if _, err := r.client.ExecuteWrite(ctx, upsertTransferCypher, params); err != nil {
		return fmt.Errorf("upsert transfer %d: %w", tx.ID, err)
	}
	return nil
}

// FetchTransfers returns every transfer between wallets reachable from wallet within
// MaxHops undirected hops, oldest first.
func (r *Repository) FetchTransfers(ctx context.Context, wallet string, opts FetchOptions) ([]domain.Transfer, error) {
	wallet = strings.TrimSpace(wallet)
	if wallet == "" {
		return nil, ErrWalletRequired
	}
	hops := opts.MaxHops
	if hops <= 0 {
		hops = defaultMaxHops
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultTransferLimit
	}

	query := fmt.Sprintf(walletTransfersCypherTemplate, hops)
	res, err := r.client.ExecuteRead(ctx, query, map[string]any{
		"wallet": wallet,
		"limit":  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch transfers for %s: %w", wallet, err)
	}

	transfers := make([]domain.Transfer, 0, len(res.Records))
	for _, record := range res.Records {
		transfers = append(transfers, domain.Transfer{
			ID:         toInt64(record["txId"]),
			From:       toString(record["from"]),
			To:         toString(record["to"]),
			Amount:     toFloat64(record["amount"]),
			Timestamp:  toString(record["timestamp"]),
			Type:       toString(record["type"]),
			Suspicious: toBool(record["suspicious"]),
		})
	}
	return transfers, nil
}

// FetchWalletPayload assembles a complete analysis payload for wallet from the stored
// transfers. Transfer ids are renumbered in chronological order.
func (r *Repository) FetchWalletPayload(ctx context.Context, wallet string, opts FetchOptions) (domain.Payload, error) {
	transfers, err := r.FetchTransfers(ctx, wallet, opts)
	if err != nil {
		return domain.Payload{}, err
	}
	for i := range transfers {
		transfers[i].ID = int64(i + 1)
	}
	return payload.Assemble(strings.TrimSpace(wallet), transfers), nil
}

// CountTransfers returns the number of SENT relationships touching wallet.
func (r *Repository) CountTransfers(ctx context.Context, wallet string) (int64, error) {
	if wallet == "" {
		return 0, ErrWalletRequired
	}
	res, err := r.client.ExecuteRead(ctx, countWalletTransfersCypher, map[string]any{"wallet": wallet})
	if err != nil {
		return 0, fmt.Errorf("count transfers for %s: %w", wallet, err)
	}
	rec, ok := res.First()
	if !ok {
		return 0, nil
	}
	return toInt64(rec["total"]), nil
}

func transferRef(wallet string, id int64) string {
	return wallet + "#" + strconv.FormatInt(id, 10)
}

func transferProperties(tx domain.Transfer) map[string]any {
	props := map[string]any{
		"txId":       tx.ID,
		"amount":     tx.Amount,
		"type":       tx.Type,
		"suspicious": tx.Suspicious,
		"timestamp":  tx.Timestamp,
	}
	if ts, ok := domain.ParseTimestamp(tx.Timestamp); ok {
		props["timestamp"] = formatTime(ts)
	}
	return props
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func toString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func toFloat64(val any) float64 {
	switch v := val.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return 0
	}
}

func toInt64(val any) int64 {
	switch v := val.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	default:
		return 0
	}
}

func toBool(val any) bool {
	v, _ := val.(bool)
	return v
}

const walletConstraintCypher = `
CREATE CONSTRAINT wallet_address IF NOT EXISTS
FOR (w:Wallet) REQUIRE w.address IS UNIQUE
`

const upsertTransferCypher = `
MERGE (a:Wallet {address: $from})
MERGE (b:Wallet {address: $to})
MERGE (a)-[s:SENT {ref: $ref}]->(b)
SET s += $props
RETURN s.ref AS ref
`

const walletTransfersCypherTemplate = `
MATCH (w:Wallet {address: $wallet})
MATCH (w)-[:SENT*0..%d]-(n:Wallet)
WITH DISTINCT n
MATCH (n)-[s:SENT]->(m:Wallet)
WITH DISTINCT s, n, m
RETURN s.txId AS txId,
       n.address AS from,
       m.address AS to,
       s.amount AS amount,
       s.timestamp AS timestamp,
       s.type AS type,
       s.suspicious AS suspicious
ORDER BY timestamp ASC, txId ASC
LIMIT $limit
`

const countWalletTransfersCypher = `
MATCH (:Wallet {address: $wallet})-[s:SENT]-()
RETURN count(DISTINCT s) AS total
`

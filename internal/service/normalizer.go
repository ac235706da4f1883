package service

import (
	"regexp"
	"strings"
	"time"

	"github.com/vanshika/fintrace/investigator/internal/domain"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// sanitizeString collapses whitespace and trims the result.
func sanitizeString(value string) string {
	value = whitespaceRegex.ReplaceAllString(value, " ")
	return strings.TrimSpace(value)
}

// normalizeAddress strips all whitespace; wallet addresses never contain spaces.
func normalizeAddress(addr string) string {
	return whitespaceRegex.ReplaceAllString(addr, "")
}

// normalizeTimestamp rewrites parseable timestamps as RFC3339 UTC and keeps anything
// else as trimmed text so the ledger can still show it as unknown.
func normalizeTimestamp(raw string) string {
	raw = strings.TrimSpace(raw)
	if ts, ok := domain.ParseTimestamp(raw); ok {
		return ts.Format(time.RFC3339Nano)
	}
	return raw
}

func normalizeTransfer(input TransferInput) domain.Transfer {
	amount := input.Amount
	if amount < 0 {
		amount = 0
	}
	return domain.Transfer{
		ID:         input.ID,
		From:       normalizeAddress(input.From),
		To:         normalizeAddress(input.To),
		Amount:     amount,
		Timestamp:  normalizeTimestamp(input.Timestamp),
		Type:       sanitizeString(input.Type),
		Suspicious: input.Suspicious,
	}
}

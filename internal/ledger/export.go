package ledger

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/vanshika/fintrace/investigator/internal/domain"
)

var csvHeader = []string{"id", "from", "to", "amount", "direction", "timestamp", "type", "suspicious"}

// ExportFilename names an export written at now.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("transactions-%d.csv", now.UnixMilli())
}

// WriteCSV writes records in order. String columns are always quoted; numeric and
// yes/no columns are bare.
func WriteCSV(w io.Writer, records []domain.TransactionRecord) error {
	if _, err := io.WriteString(w, strings.Join(csvHeader, ",")+"\n"); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		suspicious := "no"
		if r.Suspicious {
			suspicious = "yes"
		}
		row := []string{
			strconv.FormatInt(r.ID, 10),
			quote(r.FromAddress),
			quote(r.ToAddress),
			strconv.FormatFloat(r.Amount, 'f', -1, 64),
			quote(string(r.Direction)),
			quote(r.Timestamp),
			quote(r.Type),
			suspicious,
		}
		if _, err := io.WriteString(w, strings.Join(row, ",")+"\n"); err != nil {
			return fmt.Errorf("write csv row %d: %w", r.ID, err)
		}
	}
	return nil
}

// Export serializes the complete filtered and sorted set, ignoring pagination.
func (e *Engine) Export() ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, FilterAndSort(e.records, e.query)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func quote(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

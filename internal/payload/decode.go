package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vanshika/fintrace/investigator/internal/domain"
)

// ErrInvalidPayload reports a payload that violates the analysis contract.
var ErrInvalidPayload = errors.New("invalid analysis payload")

// Decode reads one analysis payload. Unknown fields are ignored; a missing wallet or
// non-object document is rejected.
func Decode(r io.Reader) (domain.Payload, error) {
	var p domain.Payload
	dec := json.NewDecoder(r)
	if err := dec.Decode(&p); err != nil {
		return domain.Payload{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if err := Validate(p); err != nil {
		return domain.Payload{}, err
	}
	return p, nil
}

// DecodeBytes decodes a payload held in memory.
func DecodeBytes(data []byte) (domain.Payload, error) {
	return Decode(bytes.NewReader(data))
}

// DecodeFile decodes the payload stored at path. "-" reads stdin.
func DecodeFile(path string) (domain.Payload, error) {
	if path == "-" {
		return Decode(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return domain.Payload{}, fmt.Errorf("open payload %s: %w", path, err)
	}
	defer f.Close()

	p, err := Decode(f)
	if err != nil {
		return domain.Payload{}, fmt.Errorf("decode payload %s: %w", path, err)
	}
	return p, nil
}

// Encode writes p as indented JSON.
func Encode(w io.Writer, p domain.Payload) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	return nil
}

// Validate checks the structural contract. Malformed edges and repeated or missing
// transaction ids are tolerated; the graph builder drops bad edges and the ledger keeps
// every row.
func Validate(p domain.Payload) error {
	if strings.TrimSpace(p.Wallet) == "" {
		return fmt.Errorf("%w: wallet is required", ErrInvalidPayload)
	}
	return nil
}

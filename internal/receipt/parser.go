// Package receipt parses raw fiscal receipt payloads. Content validation
// (tax codes, totals) is a collaborator concern and does not happen here.
package receipt

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/corepay/gateway/internal/domain"
)

// ErrMalformedReceipt is returned when the raw payload cannot be decoded.
var ErrMalformedReceipt = errors.New("malformed receipt payload")

// Parser turns a raw caller-supplied payload into a Receipt.
type Parser interface {
	// FromRaw decodes the payload. Parsing failures propagate unmodified
	// to the orchestrator's caller.
	FromRaw(data []byte) (*domain.Receipt, error)
}

// JSONParser decodes receipts from JSON payloads.
type JSONParser struct{}

// NewJSONParser creates a JSONParser.
func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

var _ Parser = (*JSONParser)(nil)

// FromRaw implements Parser. Only structure is checked here; whether the
// decoded receipt makes fiscal sense (items, totals) is the downstream
// validator's call.
func (p *JSONParser) FromRaw(data []byte) (*domain.Receipt, error) {
	var r domain.Receipt
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedReceipt, err)
	}
	return &r, nil
}

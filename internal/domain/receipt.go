package domain

// ReceiptItem is a single fiscal receipt line.
type ReceiptItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
	Tax      string `json:"tax,omitempty"`
}

// Receipt is the parsed fiscal receipt attached to a payment transaction.
// Receipt content validation is a collaborator concern; this core only
// stores what the parser produced.
type Receipt struct {
	Email string        `json:"email,omitempty"`
	Phone string        `json:"phone,omitempty"`
	Items []ReceiptItem `json:"items"`
}

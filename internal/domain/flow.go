package domain

// Role classifies an address in the money flow graph.
type Role string

const (
	RoleWallet      Role = "wallet"
	RoleSource      Role = "source"
	RoleDestination Role = "destination"
)

// FlowEdge is a single money movement between two addresses as supplied in graph_data.
type FlowEdge struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// FlowNode is a classified address with its aggregate flow and layout position.
type FlowNode struct {
	ID              string  `json:"id"`
	Role            Role    `json:"role"`
	AggregateAmount float64 `json:"aggregateAmount"`
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
}

// Transfer is a raw movement of funds before it is folded into graph edges and ledger records.
type Transfer struct {
	ID         int64
	From       string
	To         string
	Amount     float64
	Timestamp  string
	Type       string
	Suspicious bool
}

package domain

// Payload is the finished analysis handed over by the wallet risk scoring service.
type Payload struct {
	Wallet           string              `json:"wallet"`
	GraphData        []FlowEdge          `json:"graph_data"`
	Transactions     []TransactionRecord `json:"transactions,omitempty"`
	Timeline         []TimelinePoint     `json:"timeline"`
	ReportID         string              `json:"report_id,omitempty"`
	RiskScore        float64             `json:"risk_score,omitempty"`
	RiskLevel        string              `json:"risk_level,omitempty"`
	DetectedPatterns []string            `json:"detected_patterns,omitempty"`
	Summary          *FlowSummary        `json:"summary,omitempty"`
	SystemConclusion string              `json:"system_conclusion,omitempty"`
}

// TimelinePoint is one bar of the transaction burst timeline.
type TimelinePoint struct {
	Time      string  `json:"time"`
	Amount    float64 `json:"amount"`
	Timestamp string  `json:"timestamp"`
}

// FlowSummary aggregates the wallet's money movement.
type FlowSummary struct {
	TotalIn         float64 `json:"total_in"`
	TotalOut        float64 `json:"total_out"`
	TxCount         int     `json:"tx_count"`
	UniqueSenders   int     `json:"unique_senders"`
	UniqueReceivers int     `json:"unique_receivers"`
	PatternType     string  `json:"pattern_type,omitempty"`
}

// NetFlow is incoming minus outgoing volume.
func (s FlowSummary) NetFlow() float64 {
	return s.TotalIn - s.TotalOut
}

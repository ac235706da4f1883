package service

import (
	"github.com/vanshika/fintrace/investigator/internal/domain"
	"github.com/vanshika/fintrace/investigator/internal/timeline"
)

// TransferInput is one movement accepted for ingestion under a reporting wallet.
type TransferInput struct {
	Wallet     string
	ID         int64
	From       string
	To         string
	Amount     float64
	Timestamp  string
	Type       string
	Suspicious bool
}

// TransferInputs flattens a payload into ingest inputs. Ledger records are preferred;
// a payload carrying only graph_data contributes one input per edge.
func TransferInputs(p domain.Payload) []TransferInput {
	inputs := make([]TransferInput, 0, len(p.Transactions))
	if len(p.Transactions) > 0 {
		for _, r := range p.Transactions {
			inputs = append(inputs, TransferInput{
				Wallet:     p.Wallet,
				ID:         r.ID,
				From:       r.FromAddress,
				To:         r.ToAddress,
				Amount:     r.Amount,
				Timestamp:  r.Timestamp,
				Type:       r.Type,
				Suspicious: r.Suspicious,
			})
		}
		return inputs
	}
	for i, e := range p.GraphData {
		inputs = append(inputs, TransferInput{
			Wallet: p.Wallet,
			ID:     int64(i + 1),
			From:   e.From,
			To:     e.To,
			Amount: e.Amount,
		})
	}
	return inputs
}

// RiskBand is the colour band used for a risk level.
type RiskBand string

const (
	BandCritical RiskBand = "critical"
	BandHigh     RiskBand = "high"
	BandMedium   RiskBand = "medium"
	BandLow      RiskBand = "low"
)

// CaseOverview is the header block of an investigation report.
type CaseOverview struct {
	Wallet           string             `json:"wallet"`
	ReportID         string             `json:"reportId,omitempty"`
	RiskScore        float64            `json:"riskScore"`
	RiskLevel        string             `json:"riskLevel"`
	Band             RiskBand           `json:"band"`
	DetectedPatterns []string           `json:"detectedPatterns,omitempty"`
	Conclusion       string             `json:"conclusion,omitempty"`
	Summary          domain.FlowSummary `json:"summary"`
	NetFlow          float64            `json:"netFlow"`
	Timeline         timeline.Chart     `json:"timeline"`
	DroppedEdges     int                `json:"droppedEdges"`
}

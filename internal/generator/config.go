package generator

import (
	"fmt"
	"strings"
)

// Mode selects the transaction pattern produced for a wallet.
type Mode string

const (
	ModeNormal          Mode = "normal"
	ModeFraud           Mode = "fraud"
	ModeMoneyLaundering Mode = "money_laundering"
	ModePonzi           Mode = "ponzi"
	ModeRansomware      Mode = "ransomware"
	ModeCircular        Mode = "circular"
)

// Modes lists every supported pattern.
func Modes() []Mode {
	return []Mode{ModeNormal, ModeFraud, ModeMoneyLaundering, ModePonzi, ModeRansomware, ModeCircular}
}

// ParseMode validates a mode name.
func ParseMode(raw string) (Mode, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	for _, m := range Modes() {
		if string(m) == raw {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown generator mode %q", raw)
}

// Config drives the synthetic data generator.
type Config struct {
	// Wallet is the investigated address; empty picks a random 0x address per report.
	Wallet string
	Mode   Mode
	// Reports is the number of payloads produced by Generate.
	Reports int
	// NormalDays of USER/SHOP background activity are mixed into non-normal modes.
	NormalDays int
	Seed       int64
}

// DefaultConfig returns baseline settings reproducing the classic scam report.
func DefaultConfig() Config {
	return Config{
		Mode:       ModeFraud,
		Reports:    1,
		NormalDays: 2,
		Seed:       42,
	}
}

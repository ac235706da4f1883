package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/vanshika/fintrace/investigator/internal/domain"
	"github.com/vanshika/fintrace/investigator/internal/payload"
)

// timestampLayout matches the zone-less ISO timestamps of the scoring service.
const timestampLayout = "2006-01-02T15:04:05.000000"

// Dataset contains the generated analysis payloads.
type Dataset struct {
	Payloads []domain.Payload `json:"payloads"`
}

// Generator produces synthetic investigation payloads.
type Generator struct {
	cfg  Config
	rand *rand.Rand
	now  time.Time
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	if cfg.Mode == "" {
		cfg.Mode = DefaultConfig().Mode
	}
	if cfg.Reports <= 0 {
		cfg.Reports = DefaultConfig().Reports
	}
	if cfg.NormalDays < 0 {
		cfg.NormalDays = 0
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:  cfg,
		rand: rand.New(rand.NewSource(cfg.Seed)),
		now:  time.Now().UTC().Truncate(time.Second),
	}
}

// WithClock pins the reference time used for timestamps.
func (g *Generator) WithClock(now time.Time) *Generator {
	g.now = now.UTC()
	return g
}

// Generate synthesises the configured number of reports. It respects context cancellation.
func (g *Generator) Generate(ctx context.Context) (Dataset, error) {
	payloads := make([]domain.Payload, 0, g.cfg.Reports)
	for i := 0; i < g.cfg.Reports; i++ {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}
		wallet := g.cfg.Wallet
		if wallet == "" {
			wallet = g.randomAddress()
		}
		p := g.Report(wallet, g.cfg.Mode)
		p.ReportID = fmt.Sprintf("RPT-%d-%04d", g.cfg.Seed, i+1)
		payloads = append(payloads, p)
	}
	return Dataset{Payloads: payloads}, nil
}

// Report builds one analysis payload for wallet.
func (g *Generator) Report(wallet string, mode Mode) domain.Payload {
	transfers := g.Transfers(wallet, mode)
	return payload.Assemble(wallet, transfers)
}

// Transfers produces the raw movements for mode, numbered from 1.
func (g *Generator) Transfers(wallet string, mode Mode) []domain.Transfer {
	var transfers []domain.Transfer
	switch mode {
	case ModeNormal:
		transfers = g.normalActivity(wallet, 5)
	case ModeFraud:
		transfers = g.fraudActivity(wallet)
	case ModeMoneyLaundering:
		transfers = g.moneyLaundering(wallet)
	case ModePonzi:
		transfers = g.ponziScheme(wallet)
	case ModeRansomware:
		transfers = g.ransomware(wallet)
	case ModeCircular:
		transfers = g.circular(wallet)
	default:
		transfers = g.normalActivity(wallet, 5)
	}
	if mode != ModeNormal && g.cfg.NormalDays > 0 {
		transfers = append(transfers, g.normalActivity(wallet, g.cfg.NormalDays)...)
	}
	for i := range transfers {
		transfers[i].ID = int64(i + 1)
	}
	return transfers
}

func (g *Generator) normalActivity(wallet string, days int) []domain.Transfer {
	var txs []domain.Transfer
	for d := 0; d < days; d++ {
		daily := g.between(1, 3)
		for i := 0; i < daily; i++ {
			txs = append(txs, domain.Transfer{
				From:      g.randomWallet("USER"),
				To:        wallet,
				Amount:    float64(g.between(200, 4000)),
				Timestamp: g.at(time.Duration(d)*24*time.Hour + time.Duration(g.between(1, 8))*time.Hour),
				Type:      "TRANSFER",
			})
			if g.rand.Float64() < 0.4 {
				txs = append(txs, domain.Transfer{
					From:      wallet,
					To:        g.randomWallet("SHOP"),
					Amount:    float64(g.between(100, 3000)),
					Timestamp: g.at(time.Duration(d)*24*time.Hour + time.Duration(g.between(1, 8))*time.Hour),
					Type:      "PAYMENT",
				})
			}
		}
	}
	return txs
}

// fraudActivity reproduces the classic scam: victims pay the wallet, the wallet splits the
// funds across mules and the mules exit directly or through an intermediate hop.
func (g *Generator) fraudActivity(wallet string) []domain.Transfer {
	var txs []domain.Transfer
	victims := g.between(5, 10)
	collected := 0
	for i := 0; i < victims; i++ {
		amount := g.between(3000, 25000)
		collected += amount
		txs = append(txs, g.suspicious(g.randomWallet("VICTIM"), wallet, amount,
			2*time.Hour+time.Duration(30-i*3)*time.Minute))
	}

	mules := g.between(3, 6)
	split := collected / mules
	for i := 0; i < mules; i++ {
		mule := g.randomWallet("MULE")
		amount := split + g.between(-500, 500)
		txs = append(txs, g.suspicious(wallet, mule, amount, time.Hour+time.Duration(45-i*5)*time.Minute))

		if g.rand.Float64() < 0.6 {
			intermediate := g.randomWallet("INTERMEDIATE")
			txs = append(txs,
				g.suspicious(mule, intermediate, amount-g.between(50, 200), time.Hour+time.Duration(40-i*5)*time.Minute),
				g.suspicious(intermediate, g.randomWallet("EXIT"), amount-g.between(100, 300), time.Hour+time.Duration(35-i*5)*time.Minute),
			)
		} else {
			txs = append(txs, g.suspicious(mule, g.randomWallet("EXIT"), amount-g.between(50, 200), time.Hour+time.Duration(30-i*5)*time.Minute))
		}
	}

	if remaining := collected - split*mules; remaining > 100 {
		txs = append(txs, g.suspicious(wallet, g.randomWallet("MASTER_EXIT"), remaining-g.between(100, 500), 0))
	}
	return txs
}

func (g *Generator) moneyLaundering(wallet string) []domain.Transfer {
	initial := g.between(50000, 200000)
	txs := []domain.Transfer{g.suspicious(g.randomWallet("SOURCE"), wallet, initial, 24*time.Hour)}

	layers := g.between(3, 7)
	split := initial / layers
	for i := 0; i < layers; i++ {
		layer := g.randomWallet("LAYER")
		amount := split + g.between(-1000, 1000)
		txs = append(txs, g.suspicious(wallet, layer, amount, 23*time.Hour-time.Duration(g.between(0, 30))*time.Minute))
		next := g.randomWallet("LAYER")
		ago := 22*time.Hour - time.Duration(g.between(0, 30))*time.Minute
		if i == layers-1 {
			next = g.randomWallet("CLEAN")
			ago = 21 * time.Hour
		}
		txs = append(txs, g.suspicious(layer, next, amount-g.between(50, 200), ago))
	}
	return txs
}

func (g *Generator) ponziScheme(wallet string) []domain.Transfer {
	type investment struct {
		investor string
		amount   int
	}
	var txs []domain.Transfer
	var investors []investment
	collected := 0
	for i, n := 0, g.between(10, 20); i < n; i++ {
		inv := investment{investor: g.randomWallet("INVESTOR"), amount: g.between(1000, 5000) + i*200}
		investors = append(investors, inv)
		collected += inv.amount
		txs = append(txs, g.suspicious(inv.investor, wallet, inv.amount, time.Duration(30-i)*24*time.Hour))
	}

	paid := g.between(3, 6)
	paidOut := 0
	for i := 0; i < paid; i++ {
		inv := investors[i]
		profit := int(float64(inv.amount) * (0.1 + g.rand.Float64()*0.2))
		paidOut += inv.amount + profit
		txs = append(txs, g.suspicious(wallet, inv.investor, inv.amount+profit, time.Duration(15-i)*24*time.Hour))
	}

	if remaining := collected - paidOut - g.between(1000, 5000); remaining > 0 {
		txs = append(txs, g.suspicious(wallet, g.randomWallet("EXIT"), remaining, 0))
	}
	return txs
}

func (g *Generator) ransomware(wallet string) []domain.Transfer {
	ransoms := []int{500, 1000, 2000, 5000, 10000}
	var txs []domain.Transfer
	total := 0
	for i, n := 0, g.between(5, 12); i < n; i++ {
		amount := ransoms[g.rand.Intn(len(ransoms))]
		total += amount
		txs = append(txs, g.suspicious(g.randomWallet("VICTIM"), wallet, amount, time.Duration(g.between(1, 48))*time.Hour))
	}
	txs = append(txs, g.suspicious(wallet, g.randomWallet("MASTER"), total-g.between(100, 500), 0))
	return txs
}

func (g *Generator) circular(wallet string) []domain.Transfer {
	ring := []string{wallet}
	for i, n := 0, g.between(3, 6); i < n; i++ {
		ring = append(ring, g.randomWallet("RING"))
	}
	amount := g.between(10000, 50000)
	txs := []domain.Transfer{g.suspicious(g.randomWallet("SOURCE"), wallet, amount, 12*time.Hour)}
	for i := range ring {
		amount -= g.between(10, 50)
		txs = append(txs, g.suspicious(ring[i], ring[(i+1)%len(ring)], amount, time.Duration(11-i)*time.Hour))
	}
	txs = append(txs, g.suspicious(wallet, g.randomWallet("EXIT"), amount-g.between(100, 500), 0))
	return txs
}

func (g *Generator) suspicious(from, to string, amount int, ago time.Duration) domain.Transfer {
	return domain.Transfer{
		From:       from,
		To:         to,
		Amount:     float64(amount),
		Timestamp:  g.at(ago),
		Type:       "TRANSFER",
		Suspicious: true,
	}
}

func (g *Generator) at(ago time.Duration) string {
	return g.now.Add(-ago).Format(timestampLayout)
}

// between returns an integer in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rand.Intn(hi-lo+1)
}

func (g *Generator) randomWallet(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, g.between(1000, 9999))
}

func (g *Generator) randomAddress() string {
	const hexDigits = "0123456789abcdef"
	buf := make([]byte, 40)
	for i := range buf {
		buf[i] = hexDigits[g.rand.Intn(len(hexDigits))]
	}
	return "0x" + string(buf)
}

package game

import "github.com/google/uuid"

// Record is the per-player JSON record exchanged with the backend, field
// names matching the saved data format. DecayTime and Decayed are pointers
// because older records lack them; loading applies the defaults.
type Record struct {
	Balance float64       `json:"balance"`
	Cookies float64       `json:"cookies"`
	Wallet  []WalletEntry `json:"wallet"`
	Debts   []DebtEntry   `json:"debts"`
}

type WalletEntry struct {
	Amount          float64 `json:"amount"`
	PriceAtPurchase float64 `json:"priceAtPurchase"`
	Total           float64 `json:"total"`
	DecayTime       *int    `json:"decayTime,omitempty"`
	Decayed         *bool   `json:"decayed,omitempty"`
}

type DebtEntry struct {
	Kind         string  `json:"type"`
	Amount       float64 `json:"amount"`
	CurrentValue float64 `json:"currentValue"`
	AccruedDebt  float64 `json:"accruedDebt"`
	Sold         bool    `json:"sold"`
}

// NewRecord returns a fresh player record with the starting balance.
func NewRecord() Record {
	return Record{
		Balance: StartingBalance,
		Wallet:  []WalletEntry{},
		Debts:   []DebtEntry{},
	}
}

// Ledger rebuilds a ledger from a loaded record. Entries missing decay fields
// get a full timer and an active flag; entries already marked decayed are
// terminal and do not rejoin the wallet. The cookie total is recomputed from
// the surviving lots so the sum invariant holds regardless of drift in the
// saved value.
func (r Record) Ledger() *Ledger {
	l := NewLedger(r.Balance)
	for _, e := range r.Wallet {
		if e.Decayed != nil && *e.Decayed {
			continue
		}
		ticks := DecayDuration
		if e.DecayTime != nil {
			ticks = *e.DecayTime
		}
		total := e.Total
		if total == 0 {
			total = e.Amount * e.PriceAtPurchase
		}
		l.lots = append(l.lots, Lot{
			ID:              uuid.NewString(),
			Amount:          e.Amount,
			PriceAtPurchase: e.PriceAtPurchase,
			Total:           total,
			DecayTicks:      ticks,
		})
		l.cookies += e.Amount
	}
	for _, d := range r.Debts {
		l.debts = append(l.debts, DebtRecord{
			Kind:          d.Kind,
			Amount:        d.Amount,
			ValueAtExpiry: d.CurrentValue,
			Accrued:       d.AccruedDebt,
			Settled:       d.Sold,
		})
	}
	return l
}

// Snapshot serializes the ledger back into the wire record.
func (l *Ledger) Snapshot() Record {
	rec := Record{
		Balance: l.balance,
		Cookies: l.cookies,
		Wallet:  make([]WalletEntry, 0, len(l.lots)),
		Debts:   make([]DebtEntry, 0, len(l.debts)),
	}
	for _, lot := range l.lots {
		ticks := lot.DecayTicks
		decayed := lot.Decayed
		rec.Wallet = append(rec.Wallet, WalletEntry{
			Amount:          lot.Amount,
			PriceAtPurchase: lot.PriceAtPurchase,
			Total:           lot.Total,
			DecayTime:       &ticks,
			Decayed:         &decayed,
		})
	}
	for _, d := range l.debts {
		rec.Debts = append(rec.Debts, DebtEntry{
			Kind:         d.Kind,
			Amount:       d.Amount,
			CurrentValue: d.ValueAtExpiry,
			AccruedDebt:  d.Accrued,
			Sold:         d.Settled,
		})
	}
	return rec
}

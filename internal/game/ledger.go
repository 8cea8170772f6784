package game

import (
	"fmt"

	"github.com/google/uuid"
)

// Lot is a purchased batch of cookies with its own decay timer. Lots are kept
// in creation order; sells and decay both consume them oldest-first.
type Lot struct {
	ID              string
	Amount          float64
	PriceAtPurchase float64
	Total           float64
	DecayTicks      int
	Decayed         bool
}

// DebtRecord is produced exactly once per decayed lot. Accrued is carried for
// the saved record but nothing updates it yet.
type DebtRecord struct {
	Kind          string
	Amount        float64
	ValueAtExpiry float64
	Accrued       float64
	Settled       bool
}

// Ledger owns the player's balance, wallet and debts. It reads the current
// price as a per-call input and never touches the price process.
type Ledger struct {
	balance float64
	cookies float64
	lots    []Lot
	debts   []DebtRecord
}

func NewLedger(balance float64) *Ledger {
	return &Ledger{balance: balance}
}

func (l *Ledger) Balance() float64    { return l.balance }
func (l *Ledger) Cookies() float64    { return l.cookies }
func (l *Ledger) Lots() []Lot         { return append([]Lot(nil), l.lots...) }
func (l *Ledger) Debts() []DebtRecord { return append([]DebtRecord(nil), l.debts...) }

// Buy debits the balance and appends a fresh lot with a full decay timer.
// Nothing is mutated on failure.
func (l *Ledger) Buy(amount, price float64) (string, error) {
	if amount <= 0 {
		return "", ErrInvalidAmount
	}
	cost := amount * price
	if l.balance < cost {
		return "", fmt.Errorf("%w: have %.2f, need %.2f (max %g at this price)",
			ErrInsufficientBalance, l.balance, cost, MaxAffordable(l.balance, price))
	}
	lot := Lot{
		ID:              uuid.NewString(),
		Amount:          amount,
		PriceAtPurchase: price,
		Total:           cost,
		DecayTicks:      DecayDuration,
	}
	l.balance -= cost
	l.cookies += amount
	l.lots = append(l.lots, lot)
	return lot.ID, nil
}

// Sell liquidates lots oldest-first until the requested amount is covered,
// splitting the last lot if needed, and credits the proceeds. Nothing is
// mutated on failure.
func (l *Ledger) Sell(amount, price float64) (float64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	if l.cookies < amount {
		return 0, fmt.Errorf("%w: have %g, asked %g", ErrInsufficientHoldings, l.cookies, amount)
	}

	toSell := amount
	proceeds := 0.0
	kept := l.lots[:0]
	for i := range l.lots {
		lot := l.lots[i]
		switch {
		case toSell <= 0:
			kept = append(kept, lot)
		case lot.Amount <= toSell:
			proceeds += lot.Amount * price
			toSell -= lot.Amount
		default:
			proceeds += toSell * price
			lot.Amount -= toSell
			lot.Total = lot.Amount * lot.PriceAtPurchase
			toSell = 0
			kept = append(kept, lot)
		}
	}
	l.lots = kept
	l.balance += proceeds
	l.cookies -= amount
	if l.cookies < 0 {
		l.cookies = 0
	}
	return proceeds, nil
}

// TickDecay ages every active lot by one tick. Lots whose timer expires are
// removed and converted into debt records valued at the price passed in; all
// lots expiring on the same tick fire in creation order in the same call.
func (l *Ledger) TickDecay(price float64) []DebtRecord {
	var created []DebtRecord
	kept := l.lots[:0]
	for i := range l.lots {
		lot := l.lots[i]
		if lot.Decayed {
			continue
		}
		lot.DecayTicks--
		if lot.DecayTicks > 0 {
			kept = append(kept, lot)
			continue
		}
		lot.DecayTicks = 0
		lot.Decayed = true
		debt := DebtRecord{
			Kind:          DebtKindCookie,
			Amount:        lot.Amount,
			ValueAtExpiry: price,
		}
		created = append(created, debt)
		l.debts = append(l.debts, debt)
		l.cookies -= lot.Amount
		if l.cookies < 0 {
			l.cookies = 0
		}
	}
	l.lots = kept
	return created
}

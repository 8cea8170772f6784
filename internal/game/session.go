package game

import (
	mathrand "math/rand"
	"sync"
	"time"
)

// Session is the single-owner handle over one price process and one ledger.
// Price ticks, decay ticks and trades arrive from independent tickers and
// the player, so every mutation is serialized behind one mutex; the two
// state objects themselves stay free of locking.
type Session struct {
	mu     sync.Mutex
	price  *PriceProcess
	ledger *Ledger
}

// View is a read-only snapshot for rendering.
type View struct {
	Price   float64
	History []float64
	Balance float64
	Cookies float64
	Lots    []Lot
	Debts   []DebtRecord
}

// NewSession resumes a session from a saved record. The price process always
// restarts from the default price; only the portfolio survives a reload.
func NewSession(rec Record) *Session {
	rng := mathrand.New(mathrand.NewSource(time.Now().UnixNano()))
	return &Session{
		price:  NewPriceProcess(StartingPrice, rng),
		ledger: rec.Ledger(),
	}
}

// PriceTick advances the price one step and returns the new value.
func (s *Session) PriceTick() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.price.Step()
}

// DecayTick ages the wallet at the current price and returns any debts
// created this tick.
func (s *Session) DecayTick() []DebtRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.TickDecay(s.price.Price())
}

// Buy purchases at the current price. A zero amount buys the maximum
// affordable whole number of cookies.
func (s *Session) Buy(amount float64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	price := s.price.Price()
	if amount == 0 {
		amount = MaxAffordable(s.ledger.Balance(), price)
	}
	return s.ledger.Buy(amount, price)
}

// Sell liquidates at the current price. A zero amount sells everything held.
func (s *Session) Sell(amount float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	price := s.price.Price()
	if amount == 0 {
		amount = s.ledger.Cookies()
	}
	return s.ledger.Sell(amount, price)
}

// Snapshot returns the save record and a render view of the same instant.
func (s *Session) Snapshot() (Record, View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Snapshot(), View{
		Price:   s.price.Price(),
		History: s.price.History(),
		Balance: s.ledger.Balance(),
		Cookies: s.ledger.Cookies(),
		Lots:    s.ledger.Lots(),
		Debts:   s.ledger.Debts(),
	}
}

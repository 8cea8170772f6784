package game

import (
	"errors"
	"math"
)

const (
	PriceMin = 10.0
	PriceMax = 1000.0

	// Log-space walk parameters. Sigma is the per-tick noise on the price,
	// SigmaAnchor the much smaller noise on the drifting anchor.
	Sigma       = 0.262
	Kappa       = 0.06
	Alpha       = 0.02
	SigmaAnchor = 0.01

	HistoryCap = 60

	// DecayDuration is the number of decay ticks a lot survives before it
	// turns into a debt.
	DecayDuration = 60

	StartingBalance = 500.0
	StartingPrice   = 100.0

	DebtKindCookie = "$COOKIE"
)

var (
	ErrInvalidAmount        = errors.New("amount must be > 0")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrInsufficientHoldings = errors.New("insufficient cookies")
)

// MaxAffordable returns the largest whole number of cookies purchasable at
// the given price. Used by the buy-max action.
func MaxAffordable(balance, price float64) float64 {
	if price <= 0 || balance <= 0 {
		return 0
	}
	return math.Floor(balance / price)
}

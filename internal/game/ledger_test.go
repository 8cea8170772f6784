package game

import (
	"errors"
	"math"
	"testing"
)

func checkCookieSum(t *testing.T, l *Ledger) {
	t.Helper()
	sum := 0.0
	for _, lot := range l.Lots() {
		sum += lot.Amount
	}
	if math.Abs(sum-l.Cookies()) > 1e-9 {
		t.Fatalf("cookie total %v != sum of lots %v", l.Cookies(), sum)
	}
}

func TestBuyThenSellRestoresBalance(t *testing.T) {
	l := NewLedger(StartingBalance)
	if _, err := l.Buy(3, 120); err != nil {
		t.Fatalf("buy failed: %v", err)
	}
	checkCookieSum(t, l)
	if _, err := l.Sell(3, 120); err != nil {
		t.Fatalf("sell failed: %v", err)
	}
	if l.Balance() != StartingBalance {
		t.Fatalf("balance %v, want exactly %v", l.Balance(), StartingBalance)
	}
	if l.Cookies() != 0 || len(l.Lots()) != 0 {
		t.Fatalf("expected empty wallet, got %v cookies in %d lots", l.Cookies(), len(l.Lots()))
	}
}

func TestBuyInsufficientBalance(t *testing.T) {
	l := NewLedger(100)
	_, err := l.Buy(2, 60)
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if l.Balance() != 100 || l.Cookies() != 0 {
		t.Fatalf("failed buy mutated state: balance=%v cookies=%v", l.Balance(), l.Cookies())
	}
}

func TestInvalidAmounts(t *testing.T) {
	l := NewLedger(100)
	if _, err := l.Buy(0, 10); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("buy 0: expected ErrInvalidAmount, got %v", err)
	}
	if _, err := l.Buy(-1, 10); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("buy -1: expected ErrInvalidAmount, got %v", err)
	}
	if _, err := l.Sell(0, 10); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("sell 0: expected ErrInvalidAmount, got %v", err)
	}
}

func TestSellMoreThanHeld(t *testing.T) {
	l := NewLedger(StartingBalance)
	if _, err := l.Buy(2, 50); err != nil {
		t.Fatalf("buy failed: %v", err)
	}
	balance, cookies, lots := l.Balance(), l.Cookies(), len(l.Lots())

	_, err := l.Sell(3, 50)
	if !errors.Is(err, ErrInsufficientHoldings) {
		t.Fatalf("expected ErrInsufficientHoldings, got %v", err)
	}
	if l.Balance() != balance || l.Cookies() != cookies || len(l.Lots()) != lots {
		t.Fatal("failed sell mutated state")
	}
}

func TestPartialSell(t *testing.T) {
	l := NewLedger(1000)
	if _, err := l.Buy(10, 5); err != nil {
		t.Fatalf("buy failed: %v", err)
	}
	proceeds, err := l.Sell(4, 6)
	if err != nil {
		t.Fatalf("sell failed: %v", err)
	}
	if proceeds != 24 {
		t.Fatalf("proceeds %v, want 24", proceeds)
	}
	lots := l.Lots()
	if len(lots) != 1 {
		t.Fatalf("expected 1 lot, got %d", len(lots))
	}
	if lots[0].Amount != 6 || lots[0].Total != 30 {
		t.Fatalf("lot amount=%v total=%v, want 6 and 30", lots[0].Amount, lots[0].Total)
	}
	if l.Cookies() != 6 {
		t.Fatalf("cookies %v, want 6", l.Cookies())
	}
	checkCookieSum(t, l)
}

func TestFIFOSellAcrossLots(t *testing.T) {
	l := NewLedger(1000)
	if _, err := l.Buy(3, 10); err != nil {
		t.Fatalf("first buy failed: %v", err)
	}
	if _, err := l.Buy(5, 20); err != nil {
		t.Fatalf("second buy failed: %v", err)
	}

	proceeds, err := l.Sell(4, 10)
	if err != nil {
		t.Fatalf("sell failed: %v", err)
	}
	// 3 from the oldest lot + 1 from the newer lot, all at the sell price.
	if proceeds != 40 {
		t.Fatalf("proceeds %v, want 40", proceeds)
	}
	lots := l.Lots()
	if len(lots) != 1 {
		t.Fatalf("expected 1 surviving lot, got %d", len(lots))
	}
	if lots[0].Amount != 4 || lots[0].PriceAtPurchase != 20 {
		t.Fatalf("surviving lot amount=%v price=%v, want 4 at 20", lots[0].Amount, lots[0].PriceAtPurchase)
	}
	if lots[0].Total != 80 {
		t.Fatalf("surviving lot total %v, want 80", lots[0].Total)
	}
	checkCookieSum(t, l)
}

func TestDecayAfterExactlyOneTick(t *testing.T) {
	one := 1
	rec := Record{
		Balance: 0,
		Wallet:  []WalletEntry{{Amount: 2, PriceAtPurchase: 5, Total: 10, DecayTime: &one}},
	}
	l := rec.Ledger()

	created := l.TickDecay(42)
	if len(created) != 1 {
		t.Fatalf("expected 1 debt, got %d", len(created))
	}
	d := created[0]
	if d.Kind != DebtKindCookie || d.Amount != 2 || d.ValueAtExpiry != 42 {
		t.Fatalf("debt = %+v, want $COOKIE amount 2 at 42", d)
	}
	if d.Accrued != 0 || d.Settled {
		t.Fatalf("fresh debt should be unsettled with zero accrual: %+v", d)
	}
	if l.Cookies() != 0 || len(l.Lots()) != 0 {
		t.Fatalf("decayed lot still held: cookies=%v lots=%d", l.Cookies(), len(l.Lots()))
	}

	// A lot decays at most once.
	if again := l.TickDecay(42); len(again) != 0 {
		t.Fatalf("second tick created %d debts", len(again))
	}
	if len(l.Debts()) != 1 {
		t.Fatalf("debt log has %d entries, want 1", len(l.Debts()))
	}
}

func TestDecayRunsFullDuration(t *testing.T) {
	l := NewLedger(StartingBalance)
	if _, err := l.Buy(1, 100); err != nil {
		t.Fatalf("buy failed: %v", err)
	}
	for i := 0; i < DecayDuration-1; i++ {
		if created := l.TickDecay(100); len(created) != 0 {
			t.Fatalf("lot decayed early at tick %d", i+1)
		}
	}
	if created := l.TickDecay(100); len(created) != 1 {
		t.Fatalf("lot did not decay on tick %d", DecayDuration)
	}
}

func TestSimultaneousDecayFiresInOrder(t *testing.T) {
	one := 1
	rec := Record{
		Wallet: []WalletEntry{
			{Amount: 1, PriceAtPurchase: 10, DecayTime: &one},
			{Amount: 3, PriceAtPurchase: 20, DecayTime: &one},
		},
	}
	l := rec.Ledger()
	created := l.TickDecay(15)
	if len(created) != 2 {
		t.Fatalf("expected both lots to decay, got %d", len(created))
	}
	if created[0].Amount != 1 || created[1].Amount != 3 {
		t.Fatalf("debts out of creation order: %+v", created)
	}
	checkCookieSum(t, l)
}

func TestSellPreemptsDecay(t *testing.T) {
	one := 1
	rec := Record{
		Balance: 0,
		Wallet:  []WalletEntry{{Amount: 5, PriceAtPurchase: 10, DecayTime: &one}},
	}
	l := rec.Ledger()
	if _, err := l.Sell(5, 12); err != nil {
		t.Fatalf("sell failed: %v", err)
	}
	if created := l.TickDecay(12); len(created) != 0 {
		t.Fatalf("sold lot still decayed: %+v", created)
	}
}

func TestMaxAffordable(t *testing.T) {
	tests := []struct {
		balance, price, want float64
	}{
		{500, 100, 5},
		{99, 100, 0},
		{250, 100, 2},
		{0, 100, 0},
		{100, 0, 0},
	}
	for _, tc := range tests {
		if got := MaxAffordable(tc.balance, tc.price); got != tc.want {
			t.Fatalf("MaxAffordable(%v, %v) = %v, want %v", tc.balance, tc.price, got, tc.want)
		}
	}
}

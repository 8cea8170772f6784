package main

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/fatih/color"

	"cryptookie/internal/game"
)

var (
	stdinReader = bufio.NewReader(os.Stdin)
	accent      = color.New(color.FgCyan, color.Bold)
	success     = color.New(color.FgGreen, color.Bold)
	warn        = color.New(color.FgYellow, color.Bold)
	danger      = color.New(color.FgRed, color.Bold)
	neutral     = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printError(msg string) {
	danger.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func promptRequired(label string) (string, error) {
	for {
		fmt.Printf("%s: ", label)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(text)
		if text != "" {
			return text, nil
		}
		printWarn(label + " is required.")
	}
}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// sparkline scales the samples between their min and max, same as the
// original graph did with its canvas height.
func sparkline(samples []float64) string {
	if len(samples) == 0 {
		return ""
	}
	lo, hi := samples[0], samples[0]
	for _, v := range samples {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	var b strings.Builder
	for _, v := range samples {
		idx := int((v - lo) / span * float64(len(sparkRunes)-1))
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}

func renderStatus(view game.View) {
	accent.Printf("$COOKIE %8.2f  ", view.Price)
	fmt.Printf("%s  ", sparkline(view.History))
	neutral.Printf("balance $%.2f  cookies %.4f\n", view.Balance, view.Cookies)
}

func renderWallet(lots []game.Lot) {
	if len(lots) == 0 {
		printInfo("Wallet is empty.")
		return
	}
	fmt.Printf("%-4s %-10s %-12s %-12s %s\n", "#", "amount", "bought at", "total", "decays in")
	for i, lot := range lots {
		fmt.Printf("%-4d %-10g $%-11.2f $%-11.2f %ds\n",
			i+1, lot.Amount, lot.PriceAtPurchase, lot.Total, lot.DecayTicks)
	}
}

func renderDebts(debts []game.DebtRecord) {
	if len(debts) == 0 {
		return
	}
	danger.Printf("Debts (%d):\n", len(debts))
	for i, d := range debts {
		fmt.Printf("%-4d %-8s %-10g valued $%.2f\n", i+1, d.Kind, d.Amount, d.ValueAtExpiry)
	}
}

func renderRecord(username string, rec game.Record) {
	accent.Printf("Player %s\n", username)
	neutral.Printf("balance $%.2f  cookies %.4f\n", rec.Balance, rec.Cookies)
	l := rec.Ledger()
	renderWallet(l.Lots())
	renderDebts(l.Debts())
}

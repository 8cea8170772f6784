package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	cl "cryptookie/internal/cli"
	"cryptookie/internal/config"
	"cryptookie/internal/game"
)

func newPlayCmd(apiBase *string, cfg config.CLIConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play the exchange: live price, buy/sell, decay, autosave",
		Long: `Runs the game loop. Commands while playing:
  b <n>|max   buy n cookies (or as many as the balance allows)
  s <n>|all   sell n cookies oldest-first
  w           show the wallet and debts
  q           save and quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return fmt.Errorf("login required: %w", err)
			}
			client := newClient(apiBase)

			loadCtx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			rec, err := client.Player(loadCtx, sess.Username)
			cancel()
			if err != nil {
				return err
			}

			printInfo(fmt.Sprintf("Welcome back, %s. Type commands and press enter; q quits.", sess.Username))
			return runGame(cmd.Context(), client, sess.Username, rec, cfg)
		},
	}
}

// runGame drives one session: three tickers for price, decay and autosave,
// plus a line reader for player commands. All mutations funnel through the
// session, which serializes them.
func runGame(ctx context.Context, client *cl.Client, username string, rec game.Record, cfg config.CLIConfig) error {
	session := game.NewSession(rec)

	priceTicker := time.NewTicker(cfg.PriceTick)
	defer priceTicker.Stop()
	decayTicker := time.NewTicker(cfg.DecayTick)
	defer decayTicker.Stop()
	saveTicker := time.NewTicker(cfg.AutosaveEvery)
	defer saveTicker.Stop()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	saveNow := func() {
		snapshot, _ := session.Snapshot()
		saveCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.Save(saveCtx, username, snapshot); err != nil {
			printWarn(fmt.Sprintf("Autosave failed, will retry: %v", err))
			return
		}
	}

	for {
		select {
		case <-ctx.Done():
			saveNow()
			return nil

		case <-priceTicker.C:
			session.PriceTick()
			_, view := session.Snapshot()
			renderStatus(view)

		case <-decayTicker.C:
			for _, d := range session.DecayTick() {
				printError(fmt.Sprintf("A lot decayed: %g cookies turned into %s debt at $%.2f",
					d.Amount, d.Kind, d.ValueAtExpiry))
			}

		case <-saveTicker.C:
			saveNow()

		case line, ok := <-lines:
			if !ok {
				saveNow()
				return nil
			}
			if quit := handleCommand(session, line); quit {
				saveNow()
				printSuccess("Saved. Bye.")
				return nil
			}
		}
	}
}

func handleCommand(session *game.Session, line string) (quit bool) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(line)))
	if len(fields) == 0 {
		return false
	}
	switch fields[0] {
	case "q", "quit", "exit":
		return true

	case "w", "wallet":
		_, view := session.Snapshot()
		renderWallet(view.Lots)
		renderDebts(view.Debts)

	case "b", "buy":
		amount, err := parseAmount(fields, "max")
		if err != nil {
			printWarn(err.Error())
			return false
		}
		if _, err := session.Buy(amount); err != nil {
			printWarn(err.Error())
			return false
		}
		_, view := session.Snapshot()
		renderStatus(view)

	case "s", "sell":
		amount, err := parseAmount(fields, "all")
		if err != nil {
			printWarn(err.Error())
			return false
		}
		proceeds, err := session.Sell(amount)
		if err != nil {
			printWarn(err.Error())
			return false
		}
		printSuccess(fmt.Sprintf("Sold for $%.2f", proceeds))
		_, view := session.Snapshot()
		renderStatus(view)

	default:
		printWarn("Commands: b <n>|max, s <n>|all, w, q")
	}
	return false
}

// parseAmount reads the quantity argument; the keyword (max/all) or a missing
// argument maps to 0, which the session treats as "everything possible".
func parseAmount(fields []string, keyword string) (float64, error) {
	if len(fields) < 2 || fields[1] == keyword {
		return 0, nil
	}
	n, err := strconv.ParseFloat(fields[1], 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("amount must be a positive number or %q", keyword)
	}
	return n, nil
}

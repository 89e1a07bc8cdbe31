package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/benaskins/seedkeeper/internal/balance"
	"github.com/benaskins/seedkeeper/internal/disclosure"
	"github.com/benaskins/seedkeeper/internal/lifecycle"
	"github.com/benaskins/seedkeeper/internal/logbuf"
	"github.com/benaskins/seedkeeper/internal/tui"
)

const logCapacity = 200

var (
	viewIndex      int
	viewIdentities int
	viewTransfers  string
	viewAddresses  []string
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open the view-seed screen",
	Long: `Open the view-seed screen.

The wallet password is asked once at startup. The seed is only read from the
keychain after the same password is entered again on the screen, and is
hidden whenever the terminal loses focus or the process is suspended.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		index := viewIndex
		if !cmd.Flags().Changed("index") {
			index = cfg.DefaultIndex
		}
		if index < 0 {
			return fmt.Errorf("--index must not be negative, got %d", index)
		}

		screen := tui.Config{Identities: viewIdentities, RecentLimit: cfg.RecentLimit}
		if viewTransfers != "" {
			transfers, err := readTransfers(viewTransfers)
			if err != nil {
				return err
			}
			screen.Transfers = transfers
			screen.Own = balance.NewAddressSet(viewAddresses...)
		}

		reference, err := promptLogin()
		if err != nil {
			return err
		}

		creds, auditLog, err := openCredentials("view")
		if err != nil {
			return err
		}
		defer auditLog.Close()

		// The screen owns the terminal; logs go to a ring replayed on exit.
		ring := logbuf.New(logCapacity)
		prev := slog.Default()
		slog.SetDefault(slog.New(ring.Handler(&levelVar)))
		defer func() {
			slog.SetDefault(prev)
			ring.WriteTo(os.Stderr)
		}()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		ctrl := disclosure.New(creds, nil, reference,
			disclosure.WithContext(ctx),
			disclosure.WithLogger(slog.With("component", "disclosure")),
			disclosure.WithAudit(auditLog),
			disclosure.WithIndex(index),
		)
		defer ctrl.Close()

		go func() {
			trace := lifecycle.SinkFunc(func(e lifecycle.Event) {
				slog.Debug("lifecycle signal", "event", e, "redacts", e.Redacts())
			})
			if err := lifecycle.WatchSignals(ctx, lifecycle.Fanout{trace, ctrl}); err != nil {
				slog.Error("lifecycle watcher stopped", "error", err)
			}
		}()

		p := tea.NewProgram(tui.New(ctrl, screen), tea.WithAltScreen(), tea.WithReportFocus())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running view screen: %w", err)
		}
		return nil
	},
}

// promptLogin asks for the wallet password the screen will verify against.
func promptLogin() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("view requires an interactive terminal")
	}
	fmt.Fprint(os.Stderr, "Wallet password: ")
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	defer clear(b)
	if len(b) == 0 {
		return "", errors.New("password must not be empty")
	}
	return string(b), nil
}

func init() {
	viewCmd.Flags().IntVar(&viewIndex, "index", 0, "Identity index to start on")
	viewCmd.Flags().IntVar(&viewIdentities, "identities", 1, "Number of identities to cycle through")
	viewCmd.Flags().StringVar(&viewTransfers, "transfers", "", "Transfers file for the balance panel")
	viewCmd.Flags().StringArrayVar(&viewAddresses, "address", nil, "Owned address for the balance panel (repeatable)")
	rootCmd.AddCommand(viewCmd)
}

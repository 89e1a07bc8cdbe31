package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/benaskins/seedkeeper/internal/balance"
	"github.com/benaskins/seedkeeper/internal/i18n"
)

var (
	balanceAddresses []string
	balanceExact     bool
	balanceLimit     int
)

var balanceCmd = &cobra.Command{
	Use:   "balance <transfers.json>",
	Short: "Print the balance and recent transfers of an identity",
	Long: `Print the balance and recent transfers for the given owned addresses.

transfers.json holds a list of bundles:
[{"timestamp":1700000000,"persistence":true,"transactions":[{"address":"...","value":1500}]}]`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		transfers, err := readTransfers(args[0])
		if err != nil {
			return err
		}
		limit := balanceLimit
		if !cmd.Flags().Changed("limit") {
			limit = cfg.RecentLimit
		}

		own := balance.NewAddressSet(balanceAddresses...)
		total := balance.Total(transfers, own)
		view := balance.NewView(0)
		if balanceExact {
			view.Toggle()
		}

		fmt.Printf("%s: %s\n\n", i18n.T("balance"), view.Text(total))

		rows := balance.Recent(transfers, own, limit)
		if len(rows) == 0 {
			fmt.Println(i18n.T("no_transactions"))
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, row := range rows {
			fmt.Fprintf(w, "%s\t%s\t%s%s %s\n",
				row.Time.Format("2006-01-02 15:04"),
				i18n.T(row.Status.MessageID()),
				row.Sign,
				strconv.FormatFloat(row.Value, 'f', -1, 64),
				row.Unit,
			)
		}
		return w.Flush()
	},
}

// readTransfers decodes a transfers file.
func readTransfers(path string) ([]balance.Transfer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var transfers []balance.Transfer
	if err := json.Unmarshal(data, &transfers); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return transfers, nil
}

func init() {
	balanceCmd.Flags().StringArrayVar(&balanceAddresses, "address", nil, "Owned address (repeatable)")
	balanceCmd.Flags().BoolVar(&balanceExact, "exact", false, "Show the exact balance instead of the abbreviated one")
	balanceCmd.Flags().IntVar(&balanceLimit, "limit", balance.DefaultRecentLimit, "Number of recent transfers to show")
	rootCmd.AddCommand(balanceCmd)
}

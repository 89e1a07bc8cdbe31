package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/benaskins/seedkeeper/internal/seed"
)

var credentialsCmd = &cobra.Command{
	Use:     "credentials",
	Aliases: []string{"creds"},
	Short:   "Manage the wallet credentials stored in the keychain",
}

var importName string

var credentialsImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Store the wallet identities blob",
	Long: `Store the wallet identities blob, replacing any existing one.

The blob is JSON of the form {"identities":[{"name":"main","seed":"..."}]}.
With --name the input is a single bare seed instead, stored as the only
identity. Input is read from file when given, otherwise from stdin, prompting
when stdin is a terminal.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, auditLog, err := openCredentials("cli")
		if err != nil {
			return err
		}
		defer auditLog.Close()

		var blob seed.Blob
		if len(args) == 1 {
			blob, err = os.ReadFile(args[0])
		} else {
			blob, err = readBlob(os.Stdin)
		}
		if err != nil {
			return err
		}
		defer blob.Zero()

		payload, err := importPayload(blob, importName)
		if err != nil {
			return err
		}
		if importName != "" {
			defer payload.Zero()
		}

		if err := creds.Import(payload); err != nil {
			return err
		}
		fmt.Printf("Credentials stored under %q\n", creds.Key())
		if p := auditLog.Path(); p != "" {
			fmt.Printf("Audit log: %s\n", p)
		}
		return nil
	},
}

var credentialsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stored identity names",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, auditLog, err := openCredentials("cli")
		if err != nil {
			return err
		}
		defer auditLog.Close()

		names, err := creds.Identities(context.Background())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "INDEX\tNAME")
		for i, name := range names {
			fmt.Fprintf(w, "%d\t%s\n", i, name)
		}
		return w.Flush()
	},
}

var credentialsDeleteCmd = &cobra.Command{
	Use:     "delete",
	Aliases: []string{"rm"},
	Short:   "Remove the stored credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, auditLog, err := openCredentials("cli")
		if err != nil {
			return err
		}
		defer auditLog.Close()

		if err := creds.Remove(); err != nil {
			return err
		}
		fmt.Printf("Credentials %q deleted\n", creds.Key())
		if p := auditLog.Path(); p != "" {
			fmt.Printf("Audit log: %s\n", p)
		}
		return nil
	},
}

// importPayload trims input and, when name is set, wraps it as the only
// identity of a new blob.
func importPayload(input seed.Blob, name string) (seed.Blob, error) {
	input = bytes.TrimSpace(input)
	if name == "" {
		return input, nil
	}
	return seed.Encode([]seed.Identity{{Name: name, Seed: string(input)}})
}

// readBlob reads the blob from a terminal prompt or from piped input.
func readBlob(f *os.File) (seed.Blob, error) {
	if term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(os.Stderr, "Paste identities JSON: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, fmt.Errorf("reading credentials: %w", err)
		}
		return b, nil
	}
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return b, nil
}

func init() {
	credentialsImportCmd.Flags().StringVar(&importName, "name", "", "Treat the input as a bare seed stored under this identity name")
	credentialsCmd.AddCommand(credentialsImportCmd)
	credentialsCmd.AddCommand(credentialsListCmd)
	credentialsCmd.AddCommand(credentialsDeleteCmd)
	rootCmd.AddCommand(credentialsCmd)
}

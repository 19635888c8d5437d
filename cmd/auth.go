package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teemow/docsmith/internal/google"
)

func newAuthCmd() *cobra.Command {
	var (
		account string
		list    bool
	)

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate a Google account",
		Long: `Authenticate a Google account for use with docsmith.

Opens an OAuth flow: visit the printed URL in a browser, grant access to
Google Docs and Drive, then paste the authorization code back here. Tokens
are stored per account, so multiple Google accounts can be authenticated
side by side and selected via the 'account' tool parameter.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				accounts, err := google.ListAccounts()
				if err != nil {
					return fmt.Errorf("failed to list accounts: %w", err)
				}
				if len(accounts) == 0 {
					fmt.Println("No authenticated accounts found.")
					return nil
				}
				fmt.Println("Authenticated accounts:")
				for _, a := range accounts {
					fmt.Printf("  %s\n", a)
				}
				return nil
			}

			if err := google.MigrateDefaultToken(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: token migration failed: %v\n", err)
			}

			authURL, err := google.GetAuthURLForAccount(account)
			if err != nil {
				return err
			}

			fmt.Printf("Authenticating account %q\n\n", account)
			fmt.Printf("Visit the following URL in your browser:\n\n  %s\n\n", authURL)
			fmt.Print("Enter the authorization code: ")

			reader := bufio.NewReader(os.Stdin)
			code, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read authorization code: %w", err)
			}
			code = strings.TrimSpace(code)
			if code == "" {
				return fmt.Errorf("no authorization code provided")
			}

			if err := google.SaveTokenForAccount(cmd.Context(), account, code); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Printf("\nAccount %q authenticated successfully.\n", account)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Account name to authenticate")
	cmd.Flags().BoolVar(&list, "list", false, "List authenticated accounts instead of starting a new flow")

	return cmd
}

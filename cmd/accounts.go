package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"invoicectl/internal/logger"
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List the chart of expense accounts",
	Long: `Fetch the expense accounts known to the accounting backend. Account
codes are what line items reference via --account-code.`,
	RunE: runAccounts,
}

func init() {
	rootCmd.AddCommand(accountsCmd)

	accountsCmd.Flags().Bool("json", false, "Output as JSON")
}

func runAccounts(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("accounts")
	asJSON, _ := cmd.Flags().GetBool("json")

	_, client, err := loadRuntime()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(log)
	defer cancel()

	accounts, err := client.ExpenseAccounts(ctx)
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(accounts)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tNAME")
	for _, a := range accounts {
		fmt.Fprintf(w, "%s\t%s\n", a.Code, a.Name)
	}
	return w.Flush()
}

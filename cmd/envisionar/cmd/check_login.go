package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	checkEmail    string
	checkPassword string
)

var checkLoginCmd = &cobra.Command{
	Use:   "check-login",
	Short: "Run the login flow for a set of credentials",
	Long: `Run the same checks as the login form and print where the user would
be sent.

Examples:
  envisionar check-login --email pastor@envisionar.dev --password envisionar123`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		deps, err := loadDependencies(ctx)
		if err != nil {
			return err
		}
		defer deps.Close(ctx)

		res, err := deps.Gate.Authenticate(ctx, checkEmail, checkPassword)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, res.Welcome)
		fmt.Fprintf(out, "role:        %s\n", res.Role)
		fmt.Fprintf(out, "destination: %s\n", res.Destination)
		return nil
	},
}

func init() {
	checkLoginCmd.Flags().StringVar(&checkEmail, "email", "", "account email")
	checkLoginCmd.Flags().StringVar(&checkPassword, "password", "", "account password")
	_ = checkLoginCmd.MarkFlagRequired("email")
	_ = checkLoginCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(checkLoginCmd)
}

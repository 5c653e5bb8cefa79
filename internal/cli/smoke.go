package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/sitekit/internal/backend"
)

func newSmokeCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Smoke-test the backend endpoints",
		Long: `Send a single request to a backend endpoint and print what came back.

Endpoints and keys are read from the config file or SITEKIT_* environment
variables; nothing is compiled in.`,
	}

	cmd.AddCommand(newSmokeCodesCmd(g), newSmokeOTPCmd(g))
	return cmd
}

func newSmokeCodesCmd(g *globalOptions) *cobra.Command {
	var (
		table string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "codes",
		Short: "List the newest rows of the verification codes table",
		Long: `Query the database REST API for the newest verification codes.

Requires supabase.url and supabase.key (or SITEKIT_SUPABASE_URL and
SITEKIT_SUPABASE_KEY). The key needs read access to the table.

Examples:
  SITEKIT_SUPABASE_URL=https://xyz.supabase.co SITEKIT_SUPABASE_KEY=... sitekit smoke codes
  sitekit smoke codes --limit 20`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := g.config.Supabase
			if !cmd.Flags().Changed("table") {
				table = cfg.Table
			}
			if !cmd.Flags().Changed("limit") {
				limit = cfg.Limit
			}
			if limit < 1 {
				return fmt.Errorf("--limit must be at least 1, got %d", limit)
			}

			client, err := backend.NewSupabaseClient(cfg.URL, cfg.Key, g.config.HTTP.Timeout, g.logger.Named("supabase"))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Checking Supabase table: %s\n", client.CodesURL(table, limit))

			res, err := client.RecentCodes(cmd.Context(), table, limit)
			if err != nil {
				printStatusError(out, err)
				return fmt.Errorf("verification code check failed: %w", err)
			}

			fmt.Fprintf(out, "Status Code: %d\n", res.StatusCode)
			fmt.Fprintln(out, "Recent Verification Codes:")
			for _, code := range res.Codes {
				fmt.Fprintf(out, "- Time: %s, Email: %s, Code: %s\n", code.CreatedAt, code.Email, code.Code)
			}
			if len(res.Codes) == 0 {
				fmt.Fprintln(out, "No recent verification codes found.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&table, "table", "", "table to query (default from config)")
	cmd.Flags().IntVar(&limit, "limit", 0, "number of rows to fetch (default from config)")

	return cmd
}

func newSmokeOTPCmd(g *globalOptions) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "otp",
		Short: "Ask the OTP endpoint to send a verification code",
		Long: `POST {"email": ...} to the serverless OTP endpoint and report the reply.

Requires otp.url (or SITEKIT_OTP_URL). This sends a real email to the
address given.

Examples:
  sitekit smoke otp
  sitekit smoke otp --email someone@example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("email") {
				email = g.config.OTP.Email
			}

			client, err := backend.NewOTPClient(g.config.OTP.URL, g.config.HTTP.Timeout, g.logger.Named("otp"))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Sending request to %s...\n", client.URL())

			res, err := client.RequestCode(cmd.Context(), email)
			if err != nil {
				printStatusError(out, err)
				return fmt.Errorf("OTP request failed: %w", err)
			}

			fmt.Fprintf(out, "Status Code: %d\n", res.StatusCode)
			fmt.Fprintf(out, "Response Body: %s\n", res.Body)

			switch res.Outcome {
			case backend.OTPSuccess:
				fmt.Fprintln(out, "SUCCESS: Endpoint accepted the request.")
			case backend.OTPFailure:
				fmt.Fprintf(out, "FAILURE: Endpoint returned error: %s\n", res.Error)
			default:
				fmt.Fprintln(out, "Response is not JSON.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "address to send the code to (default from config)")

	return cmd
}

// printStatusError writes the status line and body of a non-2xx reply.
// Other errors are left to the caller.
func printStatusError(w io.Writer, err error) {
	var statusErr *backend.StatusError
	if !errors.As(err, &statusErr) {
		return
	}
	fmt.Fprintf(w, "HTTPError: %d - %s\n", statusErr.StatusCode, statusErr.Reason)
	fmt.Fprintln(w, string(statusErr.Body))
}

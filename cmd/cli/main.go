package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
	token   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ledger-cli",
		Short: "Transaction ledger CLI tool",
		Long:  `A command line interface for interacting with the transaction ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the ledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token for authenticated endpoints")

	rootCmd.AddCommand(depositCmd(), withdrawalCmd(), transactionCmd(), userCmd(), healthCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func depositCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Deposit operations",
	}

	var (
		userID string
		amount string
		note   string
	)

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a deposit",
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodPost, "/api/v1/deposits/", map[string]any{
				"user_id":  userID,
				"amount":   amount,
				"fee_type": "DEPOSIT",
				"note":     note,
			})
		},
	}
	createCmd.Flags().StringVar(&userID, "user", "", "User ID")
	createCmd.Flags().StringVar(&amount, "amount", "", "Gross amount")
	createCmd.Flags().StringVar(&note, "note", "", "Optional note")

	cmd.AddCommand(createCmd, statusCmd("deposits"))

	return cmd
}

func withdrawalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdrawal",
		Short: "Withdrawal operations",
	}

	var (
		userID string
		amount string
		note   string
	)

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a withdrawal",
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodPost, "/api/v1/withdrawals/", map[string]any{
				"user_id":  userID,
				"amount":   amount,
				"fee_type": "WIRE",
				"note":     note,
			})
		},
	}
	createCmd.Flags().StringVar(&userID, "user", "", "User ID")
	createCmd.Flags().StringVar(&amount, "amount", "", "Gross amount")
	createCmd.Flags().StringVar(&note, "note", "", "Optional note")

	cmd.AddCommand(createCmd, statusCmd("withdrawals"))

	return cmd
}

// statusCmd builds the shared "status <id> <new-status>" subcommand for a
// transaction kind.
func statusCmd(kind string) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <new-status>",
		Short: "Update transaction status",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodPatch, fmt.Sprintf("/api/v1/%s/%s/status", kind, args[0]), map[string]any{
				"status": args[1],
			})
		},
	}
}

func transactionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transaction",
		Short: "Transaction lookups",
	}

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch a transaction by id",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodGet, "/api/v1/transactions/"+args[0], nil)
		},
	}

	cmd.AddCommand(getCmd)

	return cmd
}

func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "User operations",
	}

	var (
		email    string
		name     string
		password string
	)

	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Register a user",
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodPost, "/api/v1/users/", map[string]any{
				"email":    email,
				"name":     name,
				"password": password,
			})
		},
	}
	registerCmd.Flags().StringVar(&email, "email", "", "Email address")
	registerCmd.Flags().StringVar(&name, "name", "", "Display name")
	registerCmd.Flags().StringVar(&password, "password", "", "Password")

	activateCmd := &cobra.Command{
		Use:   "activate <id>",
		Short: "Activate a user account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodPatch, "/api/v1/users/"+args[0]+"/activate", nil)
		},
	}

	freezeCmd := &cobra.Command{
		Use:   "freeze <id>",
		Short: "Freeze a user account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodPatch, "/api/v1/users/"+args[0]+"/freeze", nil)
		},
	}

	historyCmd := &cobra.Command{
		Use:   "history <id>",
		Short: "List a user's transactions",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodGet, "/api/v1/users/"+args[0]+"/transactions", nil)
		},
	}

	cmd.AddCommand(registerCmd, activateCmd, freezeCmd, historyCmd)

	return cmd
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check service health",
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodGet, "/ready", nil)
		},
	}
}

// doJSON performs the request, pretty-prints the JSON response and exits
// non-zero on transport or HTTP errors.
func doJSON(method, path string, payload map[string]any) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			fmt.Printf("Failed to encode request: %v\n", err)
			os.Exit(1)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		pretty.Write(raw)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		fmt.Printf("Request failed (Status: %d)\n%s\n", resp.StatusCode, pretty.String())
		os.Exit(1)
	}

	fmt.Println(pretty.String())
}

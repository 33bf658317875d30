package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var (
	baseURL string
	timeout time.Duration
	token   string
)

// swappable for tests
var bcryptGenerate = bcrypt.GenerateFromPassword

func main() {
	rootCmd := &cobra.Command{
		Use:   "lifeadmin-cli",
		Short: "lifeadmin CLI tool",
		Long:  `A command line interface for interacting with the lifeadmin API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the lifeadmin API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("LIFEADMIN_TOKEN"), "Bearer token (defaults to LIFEADMIN_TOKEN)")

	rootCmd.AddCommand(
		healthCmd(),
		loginCmd(),
		assetsCmd(),
		transactionsCmd(),
		remindersCmd(),
		syncStatusCmd(),
		hashPasswordCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check service health",
		RunE: func(cmd *cobra.Command, args []string) error {
			return getAndPrint("/ready")
		},
	}
}

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Log in and print a bearer token",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{"email": args[0], "password": args[1]}
			return postAndPrint("/api/v1/auth/login", body)
		},
	}
}

func assetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "Asset account operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List asset accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return getAndPrint("/api/v1/assets/")
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "summary",
		Short: "Show per-currency balance totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			return getAndPrint("/api/v1/assets/summary")
		},
	})

	var kind, currency, color string
	openCmd := &cobra.Command{
		Use:   "open <title>",
		Short: "Open a new asset account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{
				"title":    args[0],
				"kind":     kind,
				"currency": currency,
				"color":    color,
			}
			return postAndPrint("/api/v1/assets/", body)
		},
	}
	openCmd.Flags().StringVar(&kind, "kind", "Bank", "Account kind (Bank, Cash, Credit, Other)")
	openCmd.Flags().StringVar(&currency, "currency", "USD", "Account currency")
	openCmd.Flags().StringVar(&color, "color", "", "Display color")
	cmd.AddCommand(openCmd)

	return cmd
}

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Transaction operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return getAndPrint("/api/v1/transactions/")
		},
	})

	var kind, from, to, notes string
	recordCmd := &cobra.Command{
		Use:   "record <amount>",
		Short: "Record a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{
				"amount":        args[0],
				"kind":          kind,
				"from_asset_id": from,
				"to_asset_id":   to,
				"notes":         notes,
			}
			return postAndPrint("/api/v1/transactions/", body)
		},
	}
	recordCmd.Flags().StringVar(&kind, "kind", "Expense", "Transaction kind (Expense, Transfer, Income, Difference)")
	recordCmd.Flags().StringVar(&from, "from", "", "Source asset ID")
	recordCmd.Flags().StringVar(&to, "to", "", "Destination asset ID")
	recordCmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.AddCommand(recordCmd)

	return cmd
}

func remindersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "Reminder operations",
	}

	var activeOnly bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/reminders/"
			if activeOnly {
				path += "?active=true"
			}
			return getAndPrint(path)
		},
	}
	listCmd.Flags().BoolVar(&activeOnly, "active", false, "Only show uncompleted reminders")
	cmd.AddCommand(listCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a reminder as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postAndPrint("/api/v1/reminders/"+args[0]+"/complete", map[string]bool{"completed": true})
		},
	})

	return cmd
}

func syncStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync <collection> <id>",
		Short: "Show the durable-write status of a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getAndPrint("/api/v1/sync/" + args[0] + "/" + args[1])
		},
	}
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Hash a password with bcrypt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcryptGenerate([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Println(string(hash))
			return nil
		},
	}
}

func getAndPrint(path string) error {
	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		return err
	}
	return doAndPrint(req)
}

func postAndPrint(path string, body any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+path, strings.NewReader(string(raw)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return doAndPrint(req)
}

func doAndPrint(req *http.Request) error {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, truncate(string(raw), 200))
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		fmt.Println(string(raw))
		return nil
	}
	printJSON(parsed)
	return nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to format response: %v\n", err)
		return
	}
	fmt.Println(string(out))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

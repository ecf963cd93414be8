package main

import (
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"

	"shelf-go/internal/app"
	"shelf-go/internal/config"
	"shelf-go/internal/model"
	"shelf-go/internal/shelf"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates a ShelfApp. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "AddItem", "DeleteItem").
func newApp(operation string) (*app.ShelfApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewShelfApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// readPassphrase prompts on stderr and reads a passphrase without echo.
func readPassphrase(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	pass, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return string(pass), nil
}

// itemInputFromFlags builds an ItemInput from only the flags the user set,
// so update merges instead of clobbering.
func itemInputFromFlags(cmd *cobra.Command) shelf.ItemInput {
	var input shelf.ItemInput
	if cmd.Flags().Changed("name") {
		v, _ := cmd.Flags().GetString("name")
		input.Name = &v
	}
	if cmd.Flags().Changed("sku") {
		v, _ := cmd.Flags().GetString("sku")
		input.SKU = &v
	}
	if cmd.Flags().Changed("expires") {
		v, _ := cmd.Flags().GetString("expires")
		input.ExpiryDate = &v
	}
	if cmd.Flags().Changed("category") {
		v, _ := cmd.Flags().GetString("category")
		input.Category = &v
	}
	if cmd.Flags().Changed("notes") {
		v, _ := cmd.Flags().GetString("notes")
		input.Notes = &v
	}
	return input
}

func addItemFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Item name")
	cmd.Flags().String("sku", "", "Optional SKU code")
	cmd.Flags().String("expires", "", "Expiry date (YYYY-MM-DD)")
	cmd.Flags().String("category", "", "Category tag")
	cmd.Flags().String("notes", "", "Free-text notes")
}

func printItem(a *app.ShelfApp, it model.Item) {
	c := a.ClassifyItem(it)
	days := fmt.Sprintf("%dd", c.DaysLeft)
	fmt.Printf("%-36s  %-11s  %5s  %-14s  %s\n", it.ID, c.Status, days, it.Category, it.Name)
}

var rootCmd = &cobra.Command{
	Use:   "shelf",
	Short: "Inventory expiry tracker",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		hostID := uuid.New().String()
		cfg := config.NewConfig(hostID, defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Host ID: %s\n", hostID)
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Host ID:   %s\n", cfg.HostID)
		fmt.Printf("Base Dir:  %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:   %s\n", cfg.LogDir)
		fmt.Printf("Storage:   %s\n", cfg.Storage.Type)
		fmt.Printf("Database:  %s\n", cfg.Database.Type)
		return nil
	},
}

var configStorageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Manage inventory storage",
}

var configStorageInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Validate the configured storage backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ValidateStorage")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.ValidateStorage(); err != nil {
			return fmt.Errorf("storage validation failed: %w", err)
		}
		fmt.Println("Storage backend is accessible.")
		return nil
	},
}

// keys command
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage snapshot encryption keys",
}

var keysInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate the snapshot encryption key pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("SetupKeys")
		if err != nil {
			return err
		}
		defer a.Close()

		pass, err := readPassphrase("Passphrase for private key: ")
		if err != nil {
			return err
		}
		confirm, err := readPassphrase("Confirm passphrase: ")
		if err != nil {
			return err
		}
		if pass != confirm {
			return fmt.Errorf("passphrases do not match")
		}

		if err := a.SetupKeys(pass); err != nil {
			return fmt.Errorf("generating keys: %w", err)
		}
		fmt.Println("Key pair generated.")
		return nil
	},
}

// add command
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an item",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("AddItem")
		if err != nil {
			return err
		}
		defer a.Close()

		item, err := a.AddItem(itemInputFromFlags(cmd))
		if err != nil {
			return fmt.Errorf("adding item: %w", err)
		}

		c := a.ClassifyItem(item)
		fmt.Printf("Added %s (%s, %d day(s) left)\n", item.Name, c.Status, c.DaysLeft)
		fmt.Printf("ID: %s\n", item.ID)
		return nil
	},
}

// update command
var updateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Update an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("UpdateItem")
		if err != nil {
			return err
		}
		defer a.Close()

		item, err := a.UpdateItem(args[0], itemInputFromFlags(cmd))
		if err != nil {
			if errors.Is(err, shelf.ErrNotFound) {
				return fmt.Errorf("no item with id %s", args[0])
			}
			return fmt.Errorf("updating item: %w", err)
		}

		fmt.Printf("Updated %s\n", item.Name)
		return nil
	},
}

// rm command
var rmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DeleteItem")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.DeleteItem(args[0]); err != nil {
			if errors.Is(err, shelf.ErrNotFound) {
				return fmt.Errorf("no item with id %s", args[0])
			}
			return fmt.Errorf("removing item: %w", err)
		}

		fmt.Println("Item removed.")
		return nil
	},
}

// list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List items, soonest expiry first",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		status, _ := cmd.Flags().GetString("status")

		a, err := newApp("ListItems")
		if err != nil {
			return err
		}
		defer a.Close()

		items, err := a.ListItems(search, status)
		if err != nil {
			return err
		}

		if len(items) == 0 {
			fmt.Println("No items found.")
			return nil
		}

		for _, it := range items {
			printItem(a, it)
		}
		return nil
	},
}

// stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show inventory statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Stats")
		if err != nil {
			return err
		}
		defer a.Close()

		st := a.Stats()

		fmt.Printf("Items:    %d\n", st.Total)
		fmt.Printf("Critical: %d\n", st.CriticalCount)
		fmt.Printf("Health:   %.0f%%\n", st.HealthRatio*100)
		fmt.Println()
		for _, s := range shelf.Statuses {
			fmt.Printf("%-12s %d\n", s, st.CountsByStatus[s])
		}
		return nil
	},
}

// check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Fire alerts for expired and expiring-today items",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("CheckAlarms")
		if err != nil {
			return err
		}
		defer a.Close()

		alarms := a.CheckAlarms()
		if len(alarms) == 0 {
			fmt.Println("No urgent items.")
			return nil
		}

		for _, al := range alarms {
			fmt.Printf("%-11s  %s (%d day(s) left)\n", al.Classification.Status, al.Item.Name, al.Classification.DaysLeft)
		}
		return nil
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View mutation history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp("GetHistory")
		if err != nil {
			return err
		}
		defer a.Close()

		ops, err := a.GetHistory(limit)
		if err != nil {
			return err
		}

		if len(ops) == 0 {
			fmt.Println("No mutations recorded.")
			return nil
		}

		for _, op := range ops {
			started := time.UnixMilli(op.StartedAt)
			fmt.Printf("#%d  %-12s  %s  %-8s  %s\n",
				op.ID,
				op.Operation,
				started.Format("2006-01-02 15:04:05"),
				op.Status,
				op.Details,
			)
		}
		return nil
	},
}

// export command
var exportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Write an encrypted inventory snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Export")
		if err != nil {
			return err
		}
		defer a.Close()

		count, err := a.Export(args[0])
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		fmt.Printf("Exported %d item(s) to %s\n", count, args[0])
		return nil
	},
}

// import command
var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace the inventory from an encrypted snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Import")
		if err != nil {
			return err
		}
		defer a.Close()

		pass, err := readPassphrase("Passphrase for private key: ")
		if err != nil {
			return err
		}

		count, err := a.Import(args[0], pass)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		fmt.Printf("Imported %d item(s) from %s\n", count, args[0])
		return nil
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configStorageCmd)
	configStorageCmd.AddCommand(configStorageInitCmd)

	// keys subcommands
	keysCmd.AddCommand(keysInitCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(addCmd)
	addItemFlags(addCmd)
	rootCmd.AddCommand(updateCmd)
	addItemFlags(updateCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringP("search", "s", "", "Filter by name or SKU substring")
	listCmd.Flags().String("status", "", "Filter by status (EXPIRED, CRITICAL, WARNING, APPROACHING, SAFE)")
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of mutations to show")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

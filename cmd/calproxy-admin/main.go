package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/calproxy/calproxy/internal/logging"
	"github.com/calproxy/calproxy/internal/statestore"
	"github.com/calproxy/calproxy/internal/statestore/memstore"
	"github.com/calproxy/calproxy/internal/statestore/sqlitestore"
	"github.com/calproxy/calproxy/internal/tenant"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "calproxy-admin",
		Short:        "Tenant administration for calproxy",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("storage", "sqlite", "Backing store: sqlite or memory")
	cmd.PersistentFlags().String("sqlite-path", "./calproxy.db", "Path to the SQLite database file")
	_ = viper.BindPFlag("storage", cmd.PersistentFlags().Lookup("storage"))
	_ = viper.BindPFlag("sqlite-path", cmd.PersistentFlags().Lookup("sqlite-path"))

	cmd.AddCommand(
		newRegisterCmd(),
		newTeardownCmd(),
		newShowCmd(),
	)

	return cmd
}

func openRegistry() (*tenant.Registry, func(), error) {
	logger := logging.New("info")

	var store statestore.Store
	switch viper.GetString("storage") {
	case "memory":
		store = memstore.New()
		return tenant.NewRegistry(store), func() {}, nil
	default:
		s, err := sqlitestore.New(viper.GetString("sqlite-path"), logger)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return tenant.NewRegistry(s), func() { s.Close() }, nil
	}
}

func newRegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register <source-url> [tenant-id]",
		Short: "Register a tenant's upstream calendar URL",
		Long:  "Register a tenant's upstream calendar URL. If tenant-id is omitted, a random one is generated and printed.",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runRegister,
	}
	cmd.Flags().String("timezone", "", "Default timezone override for this tenant")
	return cmd
}

func runRegister(cmd *cobra.Command, args []string) error {
	tz, _ := cmd.Flags().GetString("timezone")

	tenantID := ""
	if len(args) == 2 {
		tenantID = args[1]
	} else {
		tenantID = uuid.NewString()
	}

	registry, cleanup, err := openRegistry()
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := tenant.Config{
		SourceURL: args[0],
		CreatedAt: time.Now().Unix(),
		Timezone:  tz,
	}

	if err := registry.Register(context.Background(), tenantID, cfg); err != nil {
		return fmt.Errorf("register tenant: %w", err)
	}

	fmt.Printf("registered %s -> %s\n", tenantID, cfg.SourceURL)
	return nil
}

func newTeardownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "teardown <tenant-id>",
		Short: "Remove a tenant's configuration and all persisted event state",
		Args:  cobra.ExactArgs(1),
		RunE:  runTeardown,
	}
}

func runTeardown(cmd *cobra.Command, args []string) error {
	registry, cleanup, err := openRegistry()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := registry.Teardown(context.Background(), args[0]); err != nil {
		return fmt.Errorf("teardown tenant: %w", err)
	}

	fmt.Printf("removed %s\n", args[0])
	return nil
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <tenant-id>",
		Short: "Print a tenant's registered configuration",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	registry, cleanup, err := openRegistry()
	if err != nil {
		return err
	}
	defer cleanup()

	cfg, ok, err := registry.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("lookup tenant: %w", err)
	}
	if !ok {
		return fmt.Errorf("no such tenant: %s", args[0])
	}

	fmt.Printf("tenant:    %s\n", args[0])
	fmt.Printf("source:    %s\n", cfg.SourceURL)
	fmt.Printf("timezone:  %s\n", cfg.Timezone)
	fmt.Printf("created:   %s\n", time.Unix(cfg.CreatedAt, 0).Format(time.RFC3339))
	return nil
}

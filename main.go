package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"lotto/cmd"
	"lotto/config"
	"lotto/database"
	"lotto/domain/entities"
	"lotto/domain/utils"
	"lotto/infrastructure"
)

func main() {
	// Check for migration subcommands
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := handleMigrationCommand(); err != nil {
			log.Fatal("Migration error:", err)
		}
		return
	}

	// Check for wallet credit subcommands
	if len(os.Args) > 1 && os.Args[1] == "credit" {
		if err := handleCredit(); err != nil {
			log.Fatal("Credit error:", err)
		}
		return
	}

	// Check for user bootstrap subcommands
	if len(os.Args) > 1 && os.Args[1] == "add-user" {
		if err := handleAddUser(); err != nil {
			log.Fatal("Add user error:", err)
		}
		return
	}

	// Normal scheduler operation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()

	// Run the application
	if err := cmd.Run(ctx); err != nil {
		log.Fatal("Application error:", err)
	}
}

func handleMigrationCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: lotto migrate [up|down|status] [args...]")
	}

	command := os.Args[2]
	switch command {
	case "up":
		return database.MigrateUp()
	case "down":
		steps := "1"
		if len(os.Args) > 3 {
			steps = os.Args[3]
		}
		return database.MigrateDown(steps)
	case "status":
		return database.MigrateStatus()
	default:
		return fmt.Errorf("unknown migration command: %s", command)
	}
}

// handleCredit grants wallet credit to a user by email
func handleCredit() error {
	if len(os.Args) < 4 {
		return fmt.Errorf("usage: lotto credit email amount-cents")
	}
	email := os.Args[2]
	amountCents, err := strconv.ParseInt(os.Args[3], 10, 64)
	if err != nil || amountCents <= 0 {
		return fmt.Errorf("amount must be a positive integer of cents")
	}

	ctx := context.Background()
	cfg := config.Get()
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Events from admin commands are not processed
	uowFactory := infrastructure.NewUnitOfWorkFactory(db, infrastructure.NewNoopEventPublisher())
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("no user with email %s", email)
	}

	txn := &entities.WalletTransaction{
		UserID:      user.ID,
		Type:        entities.TransactionTypeCredit,
		AmountCents: amountCents,
		Description: "admin credit",
	}
	newBalance, err := utils.ApplyWalletChange(ctx, uow.UserRepository(), uow.WalletTransactionRepository(), uow.EventBus(), txn)
	if err != nil {
		return fmt.Errorf("failed to credit wallet: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	log.Printf("Credited %s to %s, new balance %s", utils.FormatCents(amountCents), email, utils.FormatCents(newBalance))
	return nil
}

// handleAddUser creates a user and grants the configured starting balance
func handleAddUser() error {
	if len(os.Args) < 4 {
		return fmt.Errorf("usage: lotto add-user email username")
	}
	email, username := os.Args[2], os.Args[3]

	ctx := context.Background()
	cfg := config.Get()
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	uowFactory := infrastructure.NewUnitOfWorkFactory(db, infrastructure.NewNoopEventPublisher())
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().Create(ctx, email, username)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if cfg.StartingBalanceCents > 0 {
		txn := &entities.WalletTransaction{
			UserID:      user.ID,
			Type:        entities.TransactionTypeCredit,
			AmountCents: cfg.StartingBalanceCents,
			Description: "starting balance",
		}
		if _, err := utils.ApplyWalletChange(ctx, uow.UserRepository(), uow.WalletTransactionRepository(), uow.EventBus(), txn); err != nil {
			return fmt.Errorf("failed to grant starting balance: %w", err)
		}
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	log.Printf("Created user %s (id %d) with starting balance %s", email, user.ID, utils.FormatCents(cfg.StartingBalanceCents))
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"time"

	"lotto/application"
	"lotto/config"
	"lotto/database"
	"lotto/domain/events"
	"lotto/domain/interfaces"
	"lotto/domain/services"
	"lotto/infrastructure"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the draw scheduler
func Run(ctx context.Context) error {
	log.Info("Starting lotto scheduler...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Info("Database connection established")

	// Initialize NATS; fall back to local-only events when unavailable so
	// settlement keeps running without the message bus
	var eventPublisher interfaces.EventPublisher
	natsClient := infrastructure.NewNATSClient(cfg.NATSServers)
	if err := natsClient.Connect(ctx); err != nil {
		log.WithError(err).Warn("NATS unavailable, events will not be published")
		eventPublisher = infrastructure.NewNoopEventPublisher()
	} else {
		defer natsClient.Close()
		natsPublisher := infrastructure.NewNATSEventPublisher(natsClient, infrastructure.NewEventSubjectMapper())
		if err := natsPublisher.EnsureDomainEventStream(); err != nil {
			return fmt.Errorf("failed to ensure domain event stream: %w", err)
		}
		eventPublisher = natsPublisher
	}

	// Initialize unit of work factory
	uowFactory := infrastructure.NewUnitOfWorkFactory(db, eventPublisher)

	// Winner notifications ride the payout events, handled in-process
	notificationHandler := application.NewWinnerNotificationHandler(application.LogWinnerNotifier{})
	uowFactory.RegisterLocalHandler(events.EventTypePayoutAwarded, notificationHandler.HandlePayoutAwarded)

	// Start the scheduler worker
	worker := application.NewDrawSchedulerWorker(
		uowFactory,
		services.NewNumberGenerator(),
		time.Duration(cfg.SchedulerTickSeconds)*time.Second,
		cfg.DrawHorizon,
	)
	stopWorker := worker.Start(ctx)
	defer stopWorker()

	log.Info("Lotto scheduler running")
	<-ctx.Done()
	log.Info("Lotto scheduler stopped")
	return nil
}

package bootstrap

import (
	"fmt"
	"log"

	"cascade-softdelete/internal/config"
	"cascade-softdelete/internal/controller"
	"cascade-softdelete/internal/pkg/logger"
	"cascade-softdelete/internal/repository/unitofwork"
	"cascade-softdelete/internal/service"

	pktNats "cascade-softdelete/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SoftDeleteController controller.ISoftDeleteController

	// Services
	SoftDeleteServices service.ISoftDeleteServiceProvider

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	natsPub *pktNats.Publisher
	pubSub  *gochannel.GoChannel
}

func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())

	graph, err := NewExampleGraph()
	if err != nil {
		return nil, fmt.Errorf("invalid soft delete graph: %w", err)
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS replaces the in-process bus when configured
	var natsPub *pktNats.Publisher
	publisherService := service.NewPublisherService(cfg.Events.Topic, pubSub)
	if cfg.Events.NatsURL != "" {
		natsPub, err = pktNats.NewPublisher(cfg.Events.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			publisherService = service.NewNatsPublisherService(natsPub)
		}
	}

	consumerService := service.NewConsumerService(pubSub, cfg.Events.Topic, sysLogger)

	// 3. Services
	provider := service.NewSoftDeleteServiceProvider(
		uowFactory,
		graph,
		cfg.SoftDelete.NotFoundIsNotAnError,
		publisherService,
		sysLogger,
	)

	// 4. Controllers
	return &Container{
		SoftDeleteController: controller.NewSoftDeleteController(provider),
		SoftDeleteServices:   provider,
		ConsumerService:      consumerService,
		Logger:               sysLogger,
		natsPub:              natsPub,
		pubSub:               pubSub,
	}, nil
}

// Close releases the event bus connections.
func (c *Container) Close() error {
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	_ = c.Logger.Sync()
	return c.pubSub.Close()
}

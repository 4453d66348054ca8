package cmd

import (
	"log/slog"

	"marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/idempotencyrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/walletrepo"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"

	"gorm.io/gorm"
)

// Dependencies are the outbound adapters built by main. They are interfaces
// so tests can swap them for fakes.
type Dependencies struct {
	Cache     ports.OrderCache
	Locations ports.LocationStore
	Publisher ports.EventPublisher
	Catalog   ports.Catalog
	Geocoder  ports.Geocoder
	Logger    *slog.Logger
}

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	deps       Dependencies
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, deps Dependencies) CompositionRoot {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		deps:       deps,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) idempotencyStore() ports.IdempotencyStore {
	return idempotencyrepo.NewGormIdempotencyStore(c.gormDB, idempotencyrepo.DefaultStaleAfter)
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() commands.CheckoutCommandHandler {
	return commands.NewCheckoutCommandHandler(
		c.uoWFactory(),
		c.deps.Catalog,
		c.deps.Geocoder,
		c.idempotencyStore(),
		kernel.Money(c.cfg.DeliveryFee),
		c.deps.Logger,
	)
}

func (c *CompositionRoot) CreateMarkOrderReadyCommandHandler() commands.MarkOrderReadyCommandHandler {
	return commands.NewMarkOrderReadyCommandHandler(c.orderUoWFactory(), c.deps.Cache, c.deps.Logger)
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	return commands.NewClaimOrderCommandHandler(c.orderUoWFactory(), c.deps.Cache, c.deps.Logger)
}

func (c *CompositionRoot) CreateDeliverOrderCommandHandler() commands.DeliverOrderCommandHandler {
	return commands.NewDeliverOrderCommandHandler(c.orderUoWFactory(), c.deps.Cache, c.deps.Locations, c.deps.Logger)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.orderUoWFactory(), c.deps.Cache, c.deps.Logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.uoWFactory(), c.deps.Cache, c.deps.Locations, c.deps.Logger)
}

func (c *CompositionRoot) CreateReportLocationCommandHandler() commands.ReportLocationCommandHandler {
	return commands.NewReportLocationCommandHandler(
		orderrepo.NewGormOrderRepository(c.gormDB, nil), c.deps.Locations, c.deps.Logger)
}

func (c *CompositionRoot) CreateTopUpWalletCommandHandler() commands.TopUpWalletCommandHandler {
	var f commands.WalletUoWFactory = FuncWalletUoWFactory(func() commands.WalletUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTopUpWalletCommandHandler(f, c.idempotencyStore(), kernel.Money(c.cfg.MinTopUp), c.deps.Logger)
}

func (c *CompositionRoot) CreateSettleDeliveredOrdersCommandHandler() commands.SettleDeliveredOrdersCommandHandler {
	return commands.NewSettleDeliveredOrdersCommandHandler(c.orderUoWFactory(), c.deps.Cache, c.deps.Logger)
}

func (c *CompositionRoot) CreatePublishOutboxCommandHandler() commands.PublishOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPublishOutboxCommandHandler(f, c.deps.Publisher)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB, c.deps.Cache, c.deps.Logger)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderProgressQueryHandler() queries.GetOrderProgressQueryHandler {
	return queries.NewGetOrderProgressQueryHandler(
		orderrepo.NewGormOrderRepository(c.gormDB, nil),
		c.deps.Locations,
		services.NewProgressEstimator(c.cfg.TrackingSimulation, c.cfg.TrackingSimulationDuration),
	)
}

func (c *CompositionRoot) CreateGetWalletQueryHandler() queries.GetWalletQueryHandler {
	return queries.NewGetWalletQueryHandler(walletrepo.NewGormWalletRepository(c.gormDB))
}

func (c *CompositionRoot) CreateListWalletTransactionsQueryHandler() queries.ListWalletTransactionsQueryHandler {
	return queries.NewListWalletTransactionsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPHandlers() http.Handlers {
	return http.Handlers{
		Checkout:         c.CreateCheckoutCommandHandler(),
		MarkReady:        c.CreateMarkOrderReadyCommandHandler(),
		Claim:            c.CreateClaimOrderCommandHandler(),
		Deliver:          c.CreateDeliverOrderCommandHandler(),
		Complete:         c.CreateCompleteOrderCommandHandler(),
		Cancel:           c.CreateCancelOrderCommandHandler(),
		ReportLocation:   c.CreateReportLocationCommandHandler(),
		TopUp:            c.CreateTopUpWalletCommandHandler(),
		GetOrder:         c.CreateGetOrderQueryHandler(),
		ListOrders:       c.CreateListOrdersQueryHandler(),
		GetProgress:      c.CreateGetOrderProgressQueryHandler(),
		GetWallet:        c.CreateGetWalletQueryHandler(),
		ListTransactions: c.CreateListWalletTransactionsQueryHandler(),
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateSettleDeliveredOrdersCommandHandler(),
		c.CreatePublishOutboxCommandHandler(),
		c.cfg.OrderSettleAfter,
		c.deps.Logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncWalletUoWFactory func() commands.WalletUoW

func (f FuncWalletUoWFactory) Create() commands.WalletUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

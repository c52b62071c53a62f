package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jsoniter "github.com/json-iterator/go"

	"github.com/jhoicas/organic-orders/internal/application/auth"
	"github.com/jhoicas/organic-orders/internal/application/catalog"
	"github.com/jhoicas/organic-orders/internal/application/orders"
	"github.com/jhoicas/organic-orders/internal/application/session"
	"github.com/jhoicas/organic-orders/internal/domain/entity"
	"github.com/jhoicas/organic-orders/internal/domain/repository"
	"github.com/jhoicas/organic-orders/internal/infrastructure/bolt"
	"github.com/jhoicas/organic-orders/internal/infrastructure/csvio"
	"github.com/jhoicas/organic-orders/internal/infrastructure/dispatch"
	infrapdf "github.com/jhoicas/organic-orders/internal/infrastructure/pdf"
	"github.com/jhoicas/organic-orders/internal/infrastructure/postgres"
	"github.com/jhoicas/organic-orders/internal/infrastructure/share"
	"github.com/jhoicas/organic-orders/internal/infrastructure/slots"
	"github.com/jhoicas/organic-orders/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/organic-orders/internal/interfaces/http"
	"github.com/jhoicas/organic-orders/pkg/config"
	"github.com/jhoicas/organic-orders/pkg/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
	})
	defer log.Close()
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	kv, err := openKV(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("abrir almacenamiento")
	}
	defer kv.Close()
	store := storage.NewStore(kv, log.Zerolog())

	node, err := snowflake.NewNode(cfg.Orders.SnowflakeNode)
	if err != nil {
		log.Fatal().Err(err).Int64("node", cfg.Orders.SnowflakeNode).Msg("nodo snowflake")
	}
	calendar, err := slots.NewCalendar(cfg.Slots.Schedule, cfg.Slots.Count, nil)
	if err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.Slots.Schedule).Msg("calendario de entregas")
	}

	// Tareas posteriores al checkout: factura y mensaje compartido
	notifier := dispatch.NewNotifier(100, log.Zerolog())
	dispatcher, err := dispatch.NewDispatcher(cfg.Orders.WorkerPoolSize, notifier, log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("pool de tareas")
	}

	gate := auth.NewAdminGate(auth.JWTConfig{
		Secret:     cfg.Admin.TokenSecret,
		ExpMinutes: cfg.Admin.TokenMinutes,
		Issuer:     cfg.Admin.TokenIssuer,
	})
	codec := csvio.NewCodec()

	ctl := session.New(session.Deps{
		Catalog:         catalog.NewManager(store),
		Ledger:          orders.NewLedger(store, node, nil),
		Settings:        store,
		DefaultSettings: entity.DefaultSettings(cfg.Admin.DefaultPass),
		Gate:            gate,
		Invoices:        infrapdf.NewInvoiceGenerator(cfg.Shop.Name, cfg.Shop.Footer, cfg.Shop.CurrencySymbol),
		Share:           share.NewComposer(cfg.Shop.CurrencySymbol),
		Slots:           calendar,
		Importer:        codec,
		Exporter:        codec,
		Tasks:           dispatcher,
		Log:             log.Zerolog(),
	})
	if err := ctl.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("iniciar sesión")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Zerolog()))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Organic Orders API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Controller:    ctl,
		Admin:         gate,
		Notifications: notifier,
		Log:           log.Zerolog(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	dispatcher.Close()

	log.Info().Msg("aplicación detenida")
}

// openKV abre el medio clave-valor elegido por STORE_DRIVER.
func openKV(ctx context.Context, cfg *config.Config) (repository.KVStore, error) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		kv, err := postgres.NewKVStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return kv, nil
	case config.StoreMemory:
		return storage.NewMemoryKV(), nil
	default:
		return bolt.Open(cfg.Store.Path)
	}
}

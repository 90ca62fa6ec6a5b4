package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/paintshop-api/internal/application/inventory"
	"github.com/jhoicas/paintshop-api/internal/application/picture"
	"github.com/jhoicas/paintshop-api/internal/application/usecase"
	"github.com/jhoicas/paintshop-api/internal/domain/repository"
	"github.com/jhoicas/paintshop-api/internal/infrastructure/memory"
	"github.com/jhoicas/paintshop-api/internal/infrastructure/metrics"
	"github.com/jhoicas/paintshop-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/paintshop-api/internal/interfaces/http"
	"github.com/jhoicas/paintshop-api/pkg/config"
	"github.com/jhoicas/paintshop-api/pkg/logger"
)

type txRunner interface {
	inventory.TxRunner
	inventory.PurchaseTxRunner
	picture.TxRunner
}

// storage repositorios de la aplicación, sobre PostgreSQL o en memoria.
type storage struct {
	tx        txRunner
	materials repository.MaterialRepository
	stocks    repository.StockRepository
	movements repository.MaterialMovementRepository
	purchases repository.MaterialPurchaseRepository
	pictures  repository.PictureRepository
	sizes     repository.PictureSizeRepository
	lines     repository.PictureMaterialRepository
	close     func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.DB.Driver == config.StorageDriverMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		st := memory.NewStore()
		return &storage{
			tx:        st,
			materials: st.Materials(),
			stocks:    st.Stocks(),
			movements: st.Movements(),
			purchases: st.Purchases(),
			pictures:  st.Pictures(),
			sizes:     st.PictureSizes(),
			lines:     st.PictureMaterials(),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return &storage{
		tx:        postgres.NewTxRunner(pool),
		materials: postgres.NewMaterialRepository(pool),
		stocks:    postgres.NewStockRepository(pool),
		movements: postgres.NewMaterialMovementRepository(pool),
		purchases: postgres.NewMaterialPurchaseRepository(pool),
		pictures:  postgres.NewPictureRepository(pool),
		sizes:     postgres.NewPictureSizeRepository(pool),
		lines:     postgres.NewPictureMaterialRepository(pool),
		close:     pool.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.DB.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	recorder := metrics.NewRecorder()

	pricingUC := inventory.NewPricingUseCase(st.materials, st.purchases, cfg.Costing.AverageWindow)
	stockUC := inventory.NewStockUseCase(st.tx, st.materials, st.stocks, st.movements, pricingUC)
	movementUC := inventory.NewMovementUseCase(
		st.tx, st.materials, st.movements, st.pictures, st.lines, recorder, log,
		inventory.MovementLimits{PerMaterial: cfg.Stock.MovementsLimit, All: cfg.Stock.AllMovementsLimit},
	)
	purchaseUC := inventory.NewPurchaseUseCase(st.tx, st.purchases, recorder)
	replenishmentUC := inventory.NewReplenishmentUseCase(stockUC, pricingUC)
	materialUC := usecase.NewMaterialUseCase(st.tx, st.materials, st.sizes)
	bomUC := picture.NewBOMUseCase(st.tx, st.pictures, st.sizes, st.materials, st.lines, recorder, log)
	pictureUC := picture.NewPictureUseCase(st.tx, st.pictures, st.sizes, st.materials, st.lines, bomUC)
	costUC := picture.NewCostUseCase(st.pictures, st.lines, st.stocks, pricingUC, cfg.Costing.HourlyRate)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Paintshop API",
		}))
	} else {
		log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	deps := httpRouter.RouterDeps{
		StockUC:         stockUC,
		MovementUC:      movementUC,
		PurchaseUC:      purchaseUC,
		PricingUC:       pricingUC,
		ReplenishmentUC: replenishmentUC,
		MaterialUC:      materialUC,
		PictureUC:       pictureUC,
		BOMUC:           bomUC,
		CostUC:          costUC,
		JWTSecret:       cfg.JWT.Secret,
		Log:             log,
	}
	if cfg.Metrics.Enabled {
		deps.MetricsHandler = recorder.Handler()
	}
	httpRouter.Router(app, deps)

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

	log.Info().Msg("aplicación detenida")
}

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
	_ "github.com/jhoicas/supply-chain-api/docs"
	"github.com/jhoicas/supply-chain-api/internal/app"
	"github.com/jhoicas/supply-chain-api/internal/infrastructure/memory"
	"github.com/jhoicas/supply-chain-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/supply-chain-api/internal/interfaces/http"
	"github.com/jhoicas/supply-chain-api/pkg/config"
	"github.com/jhoicas/supply-chain-api/pkg/logger"
	"github.com/jhoicas/supply-chain-api/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

const swaggerFile = "./docs/swagger.json"

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
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var repos app.Repositories
	switch cfg.App.Storage {
	case "memory":
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		repos = app.MemoryRepositories(memory.NewStore())
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		repos = app.PostgresRepositories(pool)
	}

	services, err := app.NewServices(repos, cfg.Replenish, log.Component("replenishment"))
	if err != nil {
		log.Fatal().Err(err).Msg("armar servicios")
	}
	metrics.Register(prometheus.DefaultRegisterer)

	fiberApp := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	fiberApp.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		fiberApp.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Supply Chain API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	httpRouter.Router(fiberApp, httpRouter.RouterDeps{
		ProductUC:       services.ProductUC,
		SupplierUC:      services.SupplierUC,
		DiscountUC:      services.DiscountUC,
		OrderUC:         services.OrderUC,
		ReplenishmentUC: services.ReplenishmentUC,
		JWTSecret:       cfg.JWT.Secret,
		ServiceName:     cfg.App.Name,
		Log:             log.Component("http"),
	})

	if cfg.Replenish.Interval > 0 && len(cfg.Replenish.Branches) > 0 {
		go runTicker(ctx, services, cfg.Replenish, log)
	}

	go func() {
		if err := fiberApp.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := fiberApp.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// runTicker dispara la pasada diaria de todas las sucursales cada cfg.Interval hasta que ctx se cancele.
// La marca diaria evita duplicar órdenes por faltante cuando el intervalo es menor a un día.
func runTicker(ctx context.Context, services *app.Services, cfg config.ReplenishConfig, log *logger.Logger) {
	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()
	log.Info().Dur("interval", cfg.Interval).Ints("branches", cfg.Branches).Msg("disparador de reposición activo")
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			reports, err := services.Trigger.RunAll(ctx, cfg.Branches)
			if err != nil {
				log.Warn().Err(err).Msg("disparo de reposición interrumpido")
				continue
			}
			for _, r := range reports {
				log.Info().
					Int("branch_id", r.BranchID).
					Str("shortage", string(r.Shortage.Status)).
					Str("periodic", string(r.Periodic.Status)).
					Msg("sucursal procesada")
			}
		}
	}
}

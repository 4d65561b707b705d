// Command replenish ejecuta una pasada de reposición y termina. Pensado para cron.
//
//	replenish -branches 1,2,3 -mode daily
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/supply-chain-api/internal/app"
	appproc "github.com/jhoicas/supply-chain-api/internal/application/procurement"
	"github.com/jhoicas/supply-chain-api/internal/infrastructure/postgres"
	"github.com/jhoicas/supply-chain-api/pkg/config"
	"github.com/jhoicas/supply-chain-api/pkg/logger"
)

func main() {
	branchesFlag := flag.String("branches", "", "sucursales separadas por coma (por defecto REPLENISH_BRANCHES)")
	mode := flag.String("mode", "daily", "daily | shortage | periodic")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(2)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "replenish"})

	branches := cfg.Replenish.Branches
	if *branchesFlag != "" {
		if branches, err = config.ParseBranches(*branchesFlag); err != nil {
			log.Fatal().Err(err).Msg("-branches inválido")
		}
	}
	if len(branches) == 0 {
		log.Fatal().Msg("no hay sucursales para procesar (-branches o REPLENISH_BRANCHES)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	services, err := app.NewServices(app.PostgresRepositories(pool), cfg.Replenish, log.Component("replenishment"))
	if err != nil {
		log.Fatal().Err(err).Msg("armar servicios")
	}

	failed := 0
	switch *mode {
	case "daily":
		reports, err := services.Trigger.RunAll(ctx, branches)
		if err != nil {
			log.Error().Err(err).Msg("corrida interrumpida")
			failed++
		}
		for _, r := range reports {
			failed += countAborted(r.Shortage, r.Periodic)
		}
	case "shortage":
		for _, b := range branches {
			failed += countAborted(services.Trigger.RunShortage(ctx, b))
		}
	case "periodic":
		for _, b := range branches {
			failed += countAborted(services.Trigger.RunPeriodic(ctx, b))
		}
	default:
		log.Fatal().Str("mode", *mode).Msg("modo desconocido")
	}

	if failed > 0 {
		log.Error().Int("aborted", failed).Msg("reposición finalizada con errores")
		pool.Close()
		os.Exit(1)
	}
	log.Info().Ints("branches", branches).Str("mode", *mode).Msg("reposición finalizada")
}

func countAborted(reports ...appproc.RunReport) int {
	n := 0
	for _, r := range reports {
		if r.Status == appproc.RunAborted {
			n++
		}
	}
	return n
}

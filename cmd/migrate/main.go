package main

import (
	"flag"
	"os"

	"github.com/jhoicas/Almacen-api/internal/infrastructure/migration"
	"github.com/jhoicas/Almacen-api/pkg/config"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

func main() {
	down := flag.Bool("down", false, "revierte la última migración en vez de aplicar pendientes")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	}).Named("migrate")

	m, err := migration.New(cfg.DB.ConnectionString(), cfg.DB.MigrationsPath, log)
	if err != nil {
		log.Error().Err(err).Msg("inicializar migrador")
		os.Exit(1)
	}
	defer m.Close()

	if *down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if err != nil {
		log.Error().Err(err).Msg("ejecutar migración")
		os.Exit(1)
	}
}

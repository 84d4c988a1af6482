package main

import (
	"github.com/rs/zerolog/log"

	_ "github.com/lib/pq"

	"github.com/mbanking/bankledger/cmd/httpserver"
	"github.com/mbanking/bankledger/internal/middleware"
	"github.com/mbanking/bankledger/pkg/configpkg"
	"github.com/mbanking/bankledger/pkg/dbpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	conn, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to db")
	}

	if err := dbpkg.Migrate(conn, config.MigrationsPath); err != nil {
		logger.Fatal().Err(err).Msg("cannot apply migrations")
	}

	server, err := httpserver.New(conn, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	if err := server.Engine.Run(config.ServerAddress); err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}

// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mbanking/bankledger/internal/accountdelivery"
	"github.com/mbanking/bankledger/internal/accountrepo"
	"github.com/mbanking/bankledger/internal/accountservice"
	"github.com/mbanking/bankledger/internal/middleware"
	"github.com/mbanking/bankledger/internal/transactiondelivery"
	"github.com/mbanking/bankledger/internal/transactionrepo"
	"github.com/mbanking/bankledger/internal/transactionservice"
	"github.com/mbanking/bankledger/internal/userdelivery"
	"github.com/mbanking/bankledger/internal/userrepo"
	"github.com/mbanking/bankledger/internal/userservice"
	"github.com/mbanking/bankledger/pkg/configpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	userRepo := userrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn)

	userService := userservice.New(userRepo)
	accountService := accountservice.New(accountRepo, userService)
	transactionService := transactionservice.New(transactionRepo, accountService, config.TransferRetries)

	userHandler := userdelivery.NewHandler(userService)
	accountHandler := accountdelivery.NewHandler(accountService)
	transactionHandler := transactiondelivery.NewHandler(transactionService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	api := engine.Group("/api/v1")

	api.POST("/users", userHandler.Create)
	api.GET("/users", userHandler.List)
	api.GET("/users/:id", userHandler.Get)
	api.PUT("/users/:id", userHandler.Update)
	api.DELETE("/users/:id", userHandler.Delete)

	api.POST("/accounts", accountHandler.Create)
	api.GET("/accounts", accountHandler.List)
	api.GET("/accounts/:id", accountHandler.Get)
	api.PUT("/accounts/:id", accountHandler.Update)
	api.DELETE("/accounts/:id", accountHandler.Delete)

	api.POST("/transactions", transactionHandler.Create)
	api.GET("/transactions", transactionHandler.List)
	api.GET("/transactions/:id", transactionHandler.Get)
	api.DELETE("/transactions/:id", transactionHandler.Delete)

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}

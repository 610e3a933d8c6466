package main

import (
	"library-service/initializers"
	"library-service/internals/config"
	"library-service/internals/controllers"
	"library-service/internals/repository"
	"library-service/internals/service"
	logger "library-service/loggers"
)

func main() {
	initializers.LoadEnvVariables()
	cfg := config.Load()
	log := logger.Init(cfg.LogLevel)

	db, err := initializers.ConnectDatabase(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	if err := initializers.SyncDatabase(db); err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}
	if err := initializers.SeedAdmin(db, cfg, log); err != nil {
		log.WithError(err).Fatal("failed to seed admin user")
	}

	rdb := initializers.ConnectRedis(cfg, log)

	users := repository.NewUserRepository(db)
	books := repository.NewBookRepository(db)
	readers := repository.NewReaderRepository(db)
	loans := repository.NewLoanRepository(db)

	authSvc := service.NewAuthService(users, cfg.AccessSecret, cfg.AccessTokenExpiry, log, service.WithSessionStore(rdb))
	bookSvc := service.NewBookService(books, loans, log)
	readerSvc := service.NewReaderService(readers, loans, log)
	loanSvc := service.NewLoanService(db, loans, readers, nil, log)

	r := controllers.NewRouter(controllers.Deps{
		Auth:    authSvc,
		Books:   bookSvc,
		Readers: readerSvc,
		Loans:   loanSvc,
		Log:     log,
	})

	log.WithField("port", cfg.Port).Info("starting library management API")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"blad_backend/internal/app"
	"blad_backend/internal/auth"
	"blad_backend/internal/config"
	"blad_backend/internal/donation"
	"blad_backend/internal/platform/database"
	"blad_backend/internal/platform/logger"
	"blad_backend/internal/shared"
	"blad_backend/internal/user"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewMongo,

		// Credentials
		auth.NewJWTService,
		wire.Bind(new(shared.TokenService), new(*auth.JWTService)),
		auth.NewHandler,

		// Users; the user service is also the account source for the role gate
		user.NewMongoRepository,
		user.NewService,
		wire.Bind(new(user.Service), new(*user.ServiceImplementation)),
		wire.Bind(new(shared.AccountProvider), new(*user.ServiceImplementation)),
		user.NewHandler,

		// Donation requests
		donation.NewMongoRepository,
		donation.NewService,
		wire.Bind(new(donation.Service), new(*donation.ServiceImplementation)),
		donation.NewHandler,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}

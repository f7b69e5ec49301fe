//go:build wireinject
// +build wireinject

package main

import (
	"Pointly/config"
	"Pointly/dao"
	"Pointly/dao/cache"
	"Pointly/handler"
	"Pointly/pkg/cardno"
	"Pointly/pkg/client"
	"Pointly/pkg/database"
	"Pointly/pkg/server"
	"Pointly/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) *server.AppProvider {
	wire.Build(
		database.NewDB,
		client.NewRedisClient,
		cardno.NewFromConfig,
		cache.NewStatsCache,

		dao.ProviderSet,
		service.ProviderSet,

		wire.Struct(new(handler.Auth), "*"),
		wire.Struct(new(handler.Point), "*"),
		wire.Struct(new(handler.Card), "*"),
		wire.Struct(new(handler.Task), "*"),
		wire.Struct(new(handler.Query), "*"),
		wire.Struct(new(handler.User), "*"),

		server.NewGinEngine,
		wire.Struct(new(server.Handlers), "*"),
		wire.Struct(new(server.AppProvider), "*"),
	)
	return nil
}

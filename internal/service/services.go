package service

import (
	redisx "github.com/auroraair/aerogo/internal/redis"
	postgres "github.com/auroraair/aerogo/internal/repository/postgres"
	redis "github.com/auroraair/aerogo/internal/repository/redis"
	"github.com/auroraair/aerogo/internal/service/catalog"
	"github.com/auroraair/aerogo/internal/service/inventory"
	"github.com/auroraair/aerogo/internal/service/query"
	"github.com/auroraair/aerogo/internal/service/reservation"
	"github.com/auroraair/aerogo/internal/service/ticket"
)

type Services struct {
	Catalog     *catalog.Service
	Inventory   *inventory.Service
	Reservation *reservation.Service
	Ticket      *ticket.Service
	Query       *query.Service
}

type Config struct {
	Reservation reservation.Config
	Ticket      ticket.Config
	Query       query.Config
}

func NewServices(
	store *postgres.Store,
	cache *redis.Cache,
	pubsub *redisx.FlightsPubSub,
	limiter *redis.SlidingWindowLimiter,
	cfg Config,
) *Services {
	return &Services{
		Catalog:     catalog.New(store, cache, pubsub),
		Inventory:   inventory.New(store, cache, pubsub),
		Reservation: reservation.New(store, cache, pubsub, limiter, cfg.Reservation),
		Ticket:      ticket.New(store, cache, pubsub, cfg.Ticket),
		Query:       query.New(store, cache, cfg.Query),
	}
}

package handlers

import "github.com/go-redis/redis/v8"

// HandlerBundle groups the assembled handlers for route registration.
type HandlerBundle struct {
	Auth         *AuthHandler
	Availability *AvailabilityHandler
	Booking      *BookingHandler
	Chat         *ChatHandler
	Feed         *FeedHandler
	WS           *WSHandler

	// AuthCache backs the JWT middleware's token-hash check.
	AuthCache *redis.Client
}

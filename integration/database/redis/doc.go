// Package redis provides Redis client initialization and health checking for
// the forum's session, presence, and activity stores.
//
// This package wraps the go-redis client with URL validation, retry logic,
// and a verification ping, so callers get back a client that is known to be
// reachable. Both redis:// and rediss:// (TLS) URL schemes are supported.
//
// # Configuration
//
// All configuration is handled through the Config struct with environment
// variable mapping; load it with config.Load:
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// # Usage Example
//
//	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
//	defer cancel()
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal("failed to connect to Redis:", err)
//	}
//	defer client.Close()
//
//	sessions := session.NewRedisStore(client)
//	online := presence.NewRedisStore(client)
//
// # Health Checking
//
//	healthCheck := redis.Healthcheck(client)
//	if err := healthCheck(ctx); err != nil {
//		// report unhealthy
//	}
package redis

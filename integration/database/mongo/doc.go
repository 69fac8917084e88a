// Package mongo provides MongoDB client initialization and health checking
// for the forum's activity log store.
//
// This package wraps the official MongoDB Go driver with application-level
// retry logic. Both New and NewWithDatabase verify connectivity with a ping
// and retry with a backoff, which covers MongoDB Atlas cold starts and brief
// network interruptions during service startup.
//
// Basic usage:
//
//	ctx := context.Background()
//
//	var cfg mongo.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal("failed to load config:", err)
//	}
//
//	client, db, err := mongo.NewWithDatabase(ctx, cfg)
//	if err != nil {
//		log.Fatal("failed to connect to MongoDB:", err)
//	}
//	defer client.Disconnect(ctx)
//
//	activityStore := activity.NewMongoStore(db)
//
// Health checking:
//
//	healthCheck := mongo.Healthcheck(client)
//	if err := healthCheck(ctx); err != nil {
//		// report unhealthy
//	}
package mongo

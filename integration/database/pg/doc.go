// Package pg provides PostgreSQL connection management with migrations and
// health checking for the forum services.
//
// This package wraps the pgx driver with application-level retry logic,
// connection pool tuning, and integrated schema migration support using
// goose. Connection establishment retries with a backoff so services survive
// a database that is still starting.
//
// # Key Features
//
//   - Connect: creates a connection pool with retry logic and a verification ping
//   - Migrate: applies the embedded schema migrations (online presence and
//     activity log tables) using goose with pgx integration
//   - Healthcheck: returns a probe function for monitoring connectivity
//   - Error classification helpers for common PostgreSQL error patterns
//   - WithTx / TxFromContext / RunInTx: transaction propagation through context
//
// # Configuration
//
// All configuration is handled through the Config struct with environment
// variable mapping; load it with config.Load:
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// # Usage Example
//
//	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
//	defer cancel()
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal("failed to connect to PostgreSQL:", err)
//	}
//	defer pool.Close()
//
//	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
//	if err := pg.Migrate(ctx, pool, cfg, logger); err != nil {
//		log.Fatal("migration failed:", err)
//	}
//
//	onlineStore := presence.NewPostgresStore(pool)
//	activityStore := activity.NewPostgresStore(pool)
//
// # Health Checking
//
// The health check performs a lightweight ping suitable for readiness and
// liveness probes:
//
//	healthCheck := pg.Healthcheck(pool)
//	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
//		if err := healthCheck(r.Context()); err != nil {
//			http.Error(w, "database unhealthy", http.StatusServiceUnavailable)
//			return
//		}
//		w.WriteHeader(http.StatusOK)
//	})
//
// # Transactions
//
// RunInTx opens a transaction, attaches it to the context, and commits or
// rolls back based on the callback's error. Storage implementations check
// TxFromContext so multi-store operations can share one transaction:
//
//	err := pg.RunInTx(ctx, pool, func(ctx context.Context) error {
//		// writes here join the same transaction
//		return nil
//	})
//
// # Error Handling
//
// Use errors.Is with the package-level errors, and the classification
// helpers for driver error patterns:
//
//	if pg.IsDuplicateKeyError(err) {
//		// concurrent insert lost the race
//	}
package pg

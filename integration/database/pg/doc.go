// Package pg provides PostgreSQL connection management on top of pgx.
//
// Connect builds a pgxpool.Pool from Config and verifies it with a ping,
// retrying with exponential backoff. Migrate and MigrateFS apply goose SQL
// migrations through the pgx stdlib bridge. Healthcheck returns a check
// suitable for readiness endpoints.
//
// DB is the lazily connected handle registered as the "db" service: nothing is
// dialed until Pool or Querier is called.
//
//	db := pg.NewDB(cfg)
//	defer db.Close()
//
//	q, err := db.Querier(ctx)
//	if err != nil {
//		return err
//	}
//	_, err = q.Exec(ctx, "DELETE FROM users_sessions WHERE ts < $1", cutoff)
//
// WithTx and TxFromContext carry a pgx.Tx through the context so that code
// using DB.Querier joins the caller's transaction.
//
// Error helpers classify common failures: IsNotFoundError, IsDuplicateKeyError,
// IsForeignKeyViolationError and IsTxClosedError.
package pg

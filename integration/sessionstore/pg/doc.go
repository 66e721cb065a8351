// Package pg implements session.SaveHandler on PostgreSQL.
//
// Sessions live in the users_sessions table (session, ts, expires_at, data).
// Write upserts the row with the current unix time in ts, Destroy deletes it and
// GC removes rows whose ts is older than the given lifetime or whose expires_at
// has passed. Migrate creates the table from the embedded migrations.
//
//	db := pg.NewDB(cfg)              // integration/database/pg
//	handler := sessionpg.New(db)
//	storage := session.NewHandlerStorage(handler, session.WithTTL(time.Hour))
//
// Queries run inside the transaction stored in the context by pg.WithTx when
// there is one.
package pg

//go:build integration

// Package testdb provides utilities for tests that run against a real
// PostgreSQL database. Tests using it are compiled only with the
// integration build tag and are skipped when no database URL is set.
//
//	db := testdb.Open(t)
//	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	    users := postgres.NewPostgresUserStore(tx, nil)
//	    ...
//	})
package testdb

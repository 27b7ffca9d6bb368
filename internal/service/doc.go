// Package service holds the use cases behind the HTTP handlers: product
// catalogue maintenance, client-scoped user management and client
// authentication. Services depend on the store interfaces only; transactions
// are opened through store.RunInTransaction.
package service

// Package domain contains the core business entities of the catalogue API:
// products offered for sale, the clients (resellers) that consume the API,
// and the users each client manages. Entities here are independent of any
// storage or transport concern.
package domain

// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It acts as an adapter between external clients
// and the internal application services: products, the users a client
// registers, and the clients themselves. Every resource is returned inside
// a HATEOAS envelope whose links are resolved from Routes.
package api

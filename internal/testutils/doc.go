// Package testutils provides testing utilities shared by package tests.
//
// It contains in-memory implementations of the store interfaces, which
// behave like the PostgreSQL stores for everything the services rely on
// (ID assignment, ordering, not-found and duplicate errors), and helpers for
// executing requests against an httptest server and asserting responses.
//
//	products := testutils.NewMemoryProductStore()
//	server := testutils.CreateTestServer(t, router)
//	resp := testutils.ExecuteRequest(t, server, http.MethodGet, "/api/products", "", nil)
//	testutils.AssertErrorResponse(t, resp, http.StatusNotFound, "not found")
package testutils

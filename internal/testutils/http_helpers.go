package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/bilemo-api/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// CreateTestServer creates a httptest server with the given handler.
// Automatically registers cleanup via t.Cleanup() so callers don't need to manually close the server.
func CreateTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

// ExecuteRequest sends a request to server. body is sent verbatim when it is
// a string or []byte and JSON-encoded otherwise; nil sends no body. A
// non-empty bearer is sent as "Authorization: Bearer <bearer>".
// The response body is closed on test cleanup.
func ExecuteRequest(
	t *testing.T,
	server *httptest.Server,
	method, path, bearer string,
	body interface{},
) *http.Response {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	case []byte:
		reader = bytes.NewBuffer(b)
	default:
		encoded, err := json.Marshal(b)
		require.NoError(t, err, "Failed to marshal request body")
		reader = bytes.NewBuffer(encoded)
	}

	req, err := http.NewRequest(method, server.URL+path, reader)
	require.NoError(t, err, "Failed to create request")
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err, "Failed to execute request")
	CleanupResponseBody(t, resp)
	return resp
}

// CleanupResponseBody registers a cleanup function to close the response body
// to prevent resource leaks.
func CleanupResponseBody(t *testing.T, resp *http.Response) {
	t.Helper()
	if resp != nil && resp.Body != nil {
		t.Cleanup(func() {
			if err := resp.Body.Close(); err != nil {
				t.Logf("Warning: failed to close response body: %v", err)
			}
		})
	}
}

// DecodeJSONResponse asserts the status code and decodes the body into v.
func DecodeJSONResponse(t *testing.T, resp *http.Response, expectedStatus int, v interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")
	require.Equal(t, expectedStatus, resp.StatusCode, "Unexpected status, body: %s", string(body))
	require.NoError(t, json.Unmarshal(body, v), "Failed to unmarshal response: %s", string(body))
}

// AssertErrorResponse checks that a response contains an error with the expected status code and message.
// It returns the decoded error body for further assertions.
func AssertErrorResponse(
	t *testing.T,
	resp *http.Response,
	expectedStatus int,
	expectedErrorMsgPart string,
) shared.ErrorResponse {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode,
		"Expected status code %d but got %d", expectedStatus, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")

	var errResp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp), "Failed to unmarshal error response: %s", string(body))

	assert.Contains(t, errResp.Error, expectedErrorMsgPart,
		"Error message should contain '%s' but got '%s'", expectedErrorMsgPart, errResp.Error)
	return errResp
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string { return &s }

// IntPtr returns a pointer to n.
func IntPtr(n int) *int { return &n }

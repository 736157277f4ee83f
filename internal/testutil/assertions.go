package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Envelope mirrors the API response wrapper with data left raw for the
// caller to decode.
type Envelope struct {
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// DecodeEnvelope reads the response body into an Envelope and verifies the
// envelope code mirrors the HTTP status.
func DecodeEnvelope(t *testing.T, resp *http.Response) Envelope {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	var env Envelope
	require.NoError(t, json.Unmarshal(body, &env), "failed to unmarshal envelope: %s", string(body))
	assert.Equal(t, resp.StatusCode, env.Code, "envelope code does not mirror HTTP status")

	return env
}

// AssertEnvelopeData decodes the envelope data field into v
func AssertEnvelopeData(t *testing.T, resp *http.Response, v interface{}) Envelope {
	t.Helper()

	env := DecodeEnvelope(t, resp)
	require.NoError(t, json.Unmarshal(env.Data, v), "failed to unmarshal envelope data: %s", string(env.Data))
	return env
}

// AssertErrorEnvelope verifies status code and envelope message
func AssertErrorEnvelope(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")
	env := DecodeEnvelope(t, resp)
	assert.Equal(t, expectedMessage, env.Message, "error message mismatch")
}

package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/hywel/accountd/internal/domain"
	"github.com/hywel/accountd/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// authToken registers nothing; it logs an existing user in and returns a
// Bearer token for the protected routes.
func authToken(t *testing.T, ts *testutil.TestServer, user *domain.User, rawPassword string) string {
	t.Helper()

	resp := postJSON(t, ts.APIURL("/users/login"), map[string]string{
		"email":     user.Email,
		"pass_word": rawPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data struct {
		Token string `json:"token"`
	}
	testutil.AssertEnvelopeData(t, resp, &data)
	return data.Token
}

func doAuthed(t *testing.T, method, url, token string, body interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestUserHandler_Create(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name            string
		request         map[string]string
		setup           func()
		expectedStatus  int
		expectedMessage string
		checkResponse   func(*testing.T, *http.Response)
	}{
		{
			name: "successful creation",
			request: map[string]string{
				"name":      "newuser",
				"email":     "newuser@example.com",
				"pass_word": "password123",
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var user map[string]interface{}
				env := testutil.AssertEnvelopeData(t, resp, &user)
				assert.Equal(t, "ok", env.Message)
				assert.Equal(t, "newuser", user["name"])
				assert.Equal(t, domain.StatusNormal, user["status"])
				assert.NotContains(t, user, "pass_word", "password hash must not be serialized")
			},
		},
		{
			name: "invalid email",
			request: map[string]string{
				"name":      "newuser",
				"email":     "not-an-email",
				"pass_word": "password123",
			},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Invalid email address",
		},
		{
			name: "missing name",
			request: map[string]string{
				"email":     "newuser@example.com",
				"pass_word": "password123",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate email",
			request: map[string]string{
				"name":      "newuser",
				"email":     "taken@example.com",
				"pass_word": "password123",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithEmail("taken@example.com").
					Build(t, ts.DB.DB)
			},
			expectedStatus:  http.StatusConflict,
			expectedMessage: "Email already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			resp := postJSON(t, ts.APIURL("/users/create"), tt.request)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedMessage != "" {
				env := testutil.DecodeEnvelope(t, resp)
				assert.Equal(t, tt.expectedMessage, env.Message)
			}
			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestUserHandler_Query(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, rawPassword := testutil.NewUserBuilder().WithName("searcher").Build(t, ts.DB.DB)
	testutil.NewUserBuilder().WithName("frank").Build(t, ts.DB.DB)
	testutil.NewUserBuilder().WithName("frankie").Build(t, ts.DB.DB)

	token := authToken(t, ts, user, rawPassword)

	tests := []struct {
		name      string
		query     string
		wantCount int
	}{
		{name: "substring match", query: "frank", wantCount: 2},
		{name: "no match", query: "zzz", wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doAuthed(t, http.MethodPost, ts.APIURL("/users/getQueryUsers"), token, map[string]string{"name": tt.query})
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var users []domain.User
			testutil.AssertEnvelopeData(t, resp, &users)
			assert.Len(t, users, tt.wantCount)
		})
	}

	t.Run("requires auth", func(t *testing.T) {
		resp := postJSON(t, ts.APIURL("/users/getQueryUsers"), map[string]string{"name": "frank"})
		testutil.AssertErrorEnvelope(t, resp, http.StatusUnauthorized, "Authorization header required")
	})
}

func TestUserHandler_Delete(t *testing.T) {
	ts := testutil.NewTestServer(t)

	admin, rawPassword := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	token := authToken(t, ts, admin, rawPassword)

	victim, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	testutil.NewDeviceBuilder(victim).Build(t, ts.DB.DB)
	testutil.NewDeviceBuilder(victim).Build(t, ts.DB.DB)

	t.Run("deletes user and devices", func(t *testing.T) {
		resp := doAuthed(t, http.MethodDelete, ts.APIURL(fmt.Sprintf("/users/delete/%d", victim.ID)), token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var data bool
		testutil.AssertEnvelopeData(t, resp, &data)
		assert.True(t, data)

		var users int64
		require.NoError(t, ts.DB.DB.Model(&domain.User{}).Where("id = ?", victim.ID).Count(&users).Error)
		assert.Zero(t, users)

		var devices int64
		require.NoError(t, ts.DB.DB.Model(&domain.Device{}).Where("user_id = ?", victim.ID).Count(&devices).Error)
		assert.Zero(t, devices)
	})

	t.Run("not found", func(t *testing.T) {
		resp := doAuthed(t, http.MethodDelete, ts.APIURL("/users/delete/424242"), token, nil)
		testutil.AssertErrorEnvelope(t, resp, http.StatusNotFound, "User not found")
	})

	t.Run("unparseable id", func(t *testing.T) {
		resp := doAuthed(t, http.MethodDelete, ts.APIURL("/users/delete/abc"), token, nil)
		testutil.AssertErrorEnvelope(t, resp, http.StatusBadRequest, "Unable to parse user id")
	})

	t.Run("requires auth", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodDelete, ts.APIURL("/users/delete/1"), nil)
		require.NoError(t, err)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertErrorEnvelope(t, resp, http.StatusUnauthorized, "Authorization header required")
	})
}

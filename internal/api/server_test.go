package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripledger/tripledger/internal/auth"
	"github.com/tripledger/tripledger/internal/service"
	"github.com/tripledger/tripledger/internal/storage/sqlite"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "tripledger-api-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	server := NewServer(
		service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager),
		service.NewTripService(store),
		service.NewExpenseService(store),
		service.NewTransferService(store),
		service.NewInviteService(store),
		jwtManager,
	)

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return ts
}

// doJSON issues a request and decodes the JSON response into out (when
// out is non-nil), failing the test on transport errors.
func doJSON(t *testing.T, ts *httptest.Server, method, path, token string, body, out any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func register(t *testing.T, ts *httptest.Server, name, email string) (userID, token string) {
	t.Helper()

	var resp struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		Token string `json:"token"`
	}
	r := doJSON(t, ts, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"name":     name,
		"password": "long enough password",
	}, &resp)
	require.Equal(t, http.StatusCreated, r.StatusCode)
	return resp.User.ID, resp.Token
}

func TestServer_AuthFlow(t *testing.T) {
	ts := newTestServer(t)

	_, token := register(t, ts, "Alice", "alice@example.com")
	require.NotEmpty(t, token)

	t.Run("login returns a fresh token", func(t *testing.T) {
		var resp struct {
			Token string `json:"token"`
		}
		r := doJSON(t, ts, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "alice@example.com",
			"password": "long enough password",
		}, &resp)
		assert.Equal(t, http.StatusOK, r.StatusCode)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("wrong password is 401", func(t *testing.T) {
		r := doJSON(t, ts, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "alice@example.com",
			"password": "wrong password",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, r.StatusCode)
	})

	t.Run("short password is 400", func(t *testing.T) {
		r := doJSON(t, ts, http.MethodPost, "/api/auth/register", "", map[string]string{
			"email":    "bob@example.com",
			"password": "short",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, r.StatusCode)
	})

	t.Run("duplicate email is 409", func(t *testing.T) {
		r := doJSON(t, ts, http.MethodPost, "/api/auth/register", "", map[string]string{
			"email":    "alice@example.com",
			"password": "long enough password",
		}, nil)
		assert.Equal(t, http.StatusConflict, r.StatusCode)
	})

	t.Run("protected routes require a token", func(t *testing.T) {
		r := doJSON(t, ts, http.MethodGet, "/api/trips", "", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, r.StatusCode)

		r = doJSON(t, ts, http.MethodGet, "/api/trips", "garbage", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, r.StatusCode)
	})
}

func TestServer_TripLifecycle(t *testing.T) {
	ts := newTestServer(t)

	_, aliceToken := register(t, ts, "Alice", "alice@example.com")
	_, bobToken := register(t, ts, "Bob", "bob@example.com")

	var trip tripJSON
	r := doJSON(t, ts, http.MethodPost, "/api/trips", aliceToken, map[string]string{
		"name":     "Da Nang",
		"currency": "USD",
	}, &trip)
	require.Equal(t, http.StatusCreated, r.StatusCode)
	require.NotEmpty(t, trip.ID)
	assert.Equal(t, "USD", trip.Currency)
	require.Len(t, trip.Members, 1)

	t.Run("missing name is 400", func(t *testing.T) {
		r := doJSON(t, ts, http.MethodPost, "/api/trips", aliceToken, map[string]string{}, nil)
		assert.Equal(t, http.StatusBadRequest, r.StatusCode)
	})

	t.Run("non-member get is 403", func(t *testing.T) {
		r := doJSON(t, ts, http.MethodGet, "/api/trips/"+trip.ID, bobToken, nil, nil)
		assert.Equal(t, http.StatusForbidden, r.StatusCode)
	})

	t.Run("member sees the trip in their list", func(t *testing.T) {
		var trips []tripJSON
		r := doJSON(t, ts, http.MethodGet, "/api/trips", aliceToken, nil, &trips)
		assert.Equal(t, http.StatusOK, r.StatusCode)
		require.Len(t, trips, 1)
		assert.Equal(t, trip.ID, trips[0].ID)
	})

	t.Run("share link join then delete by non-owner is 403", func(t *testing.T) {
		r := doJSON(t, ts, http.MethodPost, "/api/invites/"+trip.ShareLink+"/accept", bobToken, nil, nil)
		require.Equal(t, http.StatusOK, r.StatusCode)

		r = doJSON(t, ts, http.MethodDelete, "/api/trips/"+trip.ID, bobToken, nil, nil)
		assert.Equal(t, http.StatusForbidden, r.StatusCode)
	})

	t.Run("owner deletes the trip", func(t *testing.T) {
		r := doJSON(t, ts, http.MethodDelete, "/api/trips/"+trip.ID, aliceToken, nil, nil)
		assert.Equal(t, http.StatusNoContent, r.StatusCode)

		r = doJSON(t, ts, http.MethodGet, "/api/trips/"+trip.ID, aliceToken, nil, nil)
		assert.Equal(t, http.StatusForbidden, r.StatusCode)
	})
}

func TestServer_ExpensesAndBalances(t *testing.T) {
	ts := newTestServer(t)

	_, aliceToken := register(t, ts, "Alice", "alice@example.com")
	_, bobToken := register(t, ts, "Bob", "bob@example.com")

	var trip tripJSON
	r := doJSON(t, ts, http.MethodPost, "/api/trips", aliceToken, map[string]string{"name": "Da Nang"}, &trip)
	require.Equal(t, http.StatusCreated, r.StatusCode)

	r = doJSON(t, ts, http.MethodPost, "/api/invites/"+trip.ShareLink+"/accept", bobToken, nil, &trip)
	require.Equal(t, http.StatusOK, r.StatusCode)
	require.Len(t, trip.Members, 2)
	aliceMember := trip.Members[0]
	bobMember := trip.Members[1]

	// Alice fronts 60, split between both.
	var expense expenseJSON
	r = doJSON(t, ts, http.MethodPost, fmt.Sprintf("/api/trips/%s/expenses", trip.ID), aliceToken, map[string]any{
		"payerId":     aliceMember.ID,
		"amount":      "60",
		"description": "Hotel",
	}, &expense)
	require.Equal(t, http.StatusCreated, r.StatusCode)
	require.Len(t, expense.Shares, 2)
	assert.True(t, expense.Shares[0].ShareAmount.Equal(decimal.NewFromInt(30)))

	t.Run("balances report", func(t *testing.T) {
		var report balanceReportJSON
		r := doJSON(t, ts, http.MethodGet, fmt.Sprintf("/api/trips/%s/balances", trip.ID), bobToken, nil, &report)
		require.Equal(t, http.StatusOK, r.StatusCode)

		require.Len(t, report.Balances, 2)
		assert.Equal(t, aliceMember.ID, report.Balances[0].MemberID)
		assert.True(t, report.Balances[0].Balance.Equal(decimal.NewFromInt(30)))
		assert.True(t, report.Balances[1].Balance.Equal(decimal.NewFromInt(-30)))

		require.Len(t, report.Settlements, 1)
		assert.Equal(t, bobMember.ID, report.Settlements[0].FromMemberID)
		assert.Equal(t, "Alice", report.Settlements[0].To)
		assert.True(t, report.Settlements[0].Amount.Equal(decimal.NewFromInt(30)))

		assert.True(t, report.Residual.IsZero())
		assert.True(t, report.DebtMatrix[bobMember.ID][aliceMember.ID].Equal(decimal.NewFromInt(30)))
	})

	t.Run("recording the settlement as a transfer clears it", func(t *testing.T) {
		r := doJSON(t, ts, http.MethodPost, fmt.Sprintf("/api/trips/%s/transfers", trip.ID), bobToken, map[string]any{
			"fromMemberId": bobMember.ID,
			"toMemberId":   aliceMember.ID,
			"amount":       "30",
		}, nil)
		require.Equal(t, http.StatusCreated, r.StatusCode)

		var report balanceReportJSON
		r = doJSON(t, ts, http.MethodGet, fmt.Sprintf("/api/trips/%s/balances", trip.ID), aliceToken, nil, &report)
		require.Equal(t, http.StatusOK, r.StatusCode)
		assert.Empty(t, report.Settlements)
		for _, b := range report.Balances {
			assert.True(t, b.Balance.IsZero(), "%s balance = %s", b.MemberName, b.Balance)
		}
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		r := doJSON(t, ts, http.MethodPost, fmt.Sprintf("/api/trips/%s/expenses", trip.ID), aliceToken, map[string]any{
			"payerId": aliceMember.ID,
			"amount":  "10",
			"payer":   "oops",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, r.StatusCode)
	})
}

func TestServer_InviteRoutes(t *testing.T) {
	ts := newTestServer(t)

	_, aliceToken := register(t, ts, "Alice", "alice@example.com")
	_, bobToken := register(t, ts, "Bob", "bob@example.com")

	var trip tripJSON
	r := doJSON(t, ts, http.MethodPost, "/api/trips", aliceToken, map[string]string{"name": "Da Nang"}, &trip)
	require.Equal(t, http.StatusCreated, r.StatusCode)

	var created createInviteResponse
	r = doJSON(t, ts, http.MethodPost, fmt.Sprintf("/api/trips/%s/invites", trip.ID), aliceToken, map[string]string{
		"email": "bob@example.com",
	}, &created)
	require.Equal(t, http.StatusCreated, r.StatusCode)
	require.NotEmpty(t, created.Invite.Token)
	assert.True(t, created.UserExists)
	invite := created.Invite

	t.Run("lookup is public", func(t *testing.T) {
		r := doJSON(t, ts, http.MethodGet, "/api/invites/"+invite.Token, "", nil, nil)
		assert.Equal(t, http.StatusOK, r.StatusCode)
	})

	t.Run("unknown token is 404", func(t *testing.T) {
		r := doJSON(t, ts, http.MethodGet, "/api/invites/nope", "", nil, nil)
		assert.Equal(t, http.StatusNotFound, r.StatusCode)
	})

	t.Run("notification accept joins the trip", func(t *testing.T) {
		var notifications []notificationJSON
		r := doJSON(t, ts, http.MethodGet, "/api/notifications", bobToken, nil, &notifications)
		require.Equal(t, http.StatusOK, r.StatusCode)
		require.Len(t, notifications, 1)

		var joined tripJSON
		r = doJSON(t, ts, http.MethodPost, "/api/notifications/"+notifications[0].ID+"/accept", bobToken, nil, &joined)
		require.Equal(t, http.StatusOK, r.StatusCode)
		assert.Len(t, joined.Members, 2)
	})

	t.Run("consumed invite cannot be revoked", func(t *testing.T) {
		r := doJSON(t, ts, http.MethodPost, "/api/invites/"+invite.Token+"/revoke", aliceToken, nil, nil)
		assert.Equal(t, http.StatusConflict, r.StatusCode)
	})
}

func TestServer_Health(t *testing.T) {
	ts := newTestServer(t)

	var body map[string]string
	r := doJSON(t, ts, http.MethodGet, "/health", "", nil, &body)
	assert.Equal(t, http.StatusOK, r.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

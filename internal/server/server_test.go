package server

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	clientdomain "github.com/ledgique/ledgique/internal/client/domain"
	clientrepository "github.com/ledgique/ledgique/internal/client/repository"
	clientservice "github.com/ledgique/ledgique/internal/client/service"
	"github.com/ledgique/ledgique/internal/config"
	identitydomain "github.com/ledgique/ledgique/internal/identity/domain"
	identityrepository "github.com/ledgique/ledgique/internal/identity/repository"
	identityservice "github.com/ledgique/ledgique/internal/identity/service"
	"github.com/ledgique/ledgique/internal/identity/webhook"
	"github.com/ledgique/ledgique/pkg/db"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	testJWTSecret     = "test-jwt-secret"
	testWebhookSecret = "test-webhook-secret"
)

type serverFixture struct {
	server *Server
	db     *gorm.DB
	node   *snowflake.Node
	token  string
	tenant snowflake.ID
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&identitydomain.Account{},
		&clientdomain.Client{},
		&clientdomain.ClientSource{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	cfg := config.Config{
		AuthJWTSecret:         testJWTSecret,
		IdentityWebhookSecret: testWebhookSecret,
	}

	identitySvc := identityservice.New(identityservice.Params{
		Cfg:   cfg,
		DB:    gdb,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  identityrepository.Provide(),
	})
	clientSvc := clientservice.New(clientservice.Params{
		DB:    gdb,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  clientrepository.Provide(),
	})

	verifier, err := webhook.NewVerifier(testWebhookSecret)
	require.NoError(t, err)

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	srv := NewServer(ServerParams{
		Gin:             engine,
		Cfg:             cfg,
		DB:              gdb,
		GenID:           node,
		IdentitySvc:     identitySvc,
		WebhookVerifier: verifier,
		ClientSvc:       clientSvc,
	})

	account := identitydomain.Account{
		ID:         node.Generate(),
		ExternalID: "user_test_1",
		Email:      "owner@example.com",
		Name:       "Owner",
		Currency:   "USD",
		Metadata:   datatypes.JSONMap{},
	}
	require.NoError(t, gdb.Create(&account).Error)

	claims := jwt.MapClaims{
		"sub": account.ExternalID,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	return &serverFixture{
		server: srv,
		db:     gdb,
		node:   node,
		token:  token,
		tenant: account.ID,
	}
}

func (f *serverFixture) request(t *testing.T, method, path string, body any, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	rec := httptest.NewRecorder()
	f.server.Engine().ServeHTTP(rec, req)
	return rec
}

func TestUnauthenticatedRequestsAreRejected(t *testing.T) {
	f := newServerFixture(t)

	rec := f.request(t, http.MethodGet, "/api/v1/clients", nil, false)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
}

func TestClientLifecycleOverHTTP(t *testing.T) {
	f := newServerFixture(t)

	rec := f.request(t, http.MethodPost, "/api/v1/clients", gin.H{
		"name":    "Acme Studio",
		"company": "Acme LLC",
		"emails":  []string{"billing@acme.test"},
	}, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var created clientdomain.Client
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, "Acme Studio", created.Name)
	require.Equal(t, f.tenant, created.TenantID)

	rec = f.request(t, http.MethodGet, "/api/v1/clients?page=1&limit=10", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Items      []clientdomain.Client `json:"items"`
		Pagination struct {
			CurrentPage int   `json:"currentPage"`
			TotalCount  int64 `json:"totalCount"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Items, 1)
	require.Equal(t, 1, page.Pagination.CurrentPage)
	require.EqualValues(t, 1, page.Pagination.TotalCount)

	rec = f.request(t, http.MethodGet, "/api/v1/clients/"+created.ID.String(), nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestUnknownClientReturnsNotFound(t *testing.T) {
	f := newServerFixture(t)

	rec := f.request(t, http.MethodGet, "/api/v1/clients/"+f.node.Generate().String(), nil, true)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"Not found"}`, rec.Body.String())
}

func TestValidationErrorsUseSentinelMessages(t *testing.T) {
	f := newServerFixture(t)

	rec := f.request(t, http.MethodPost, "/api/v1/clients", gin.H{"name": "   "}, true)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"invalid_name"}`, rec.Body.String())
}

func signWebhook(id, timestamp string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(testWebhookSecret))
	fmt.Fprintf(mac, "%s.%s.", id, timestamp)
	mac.Write(payload)
	return "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestIdentityWebhookProvisionsAccount(t *testing.T) {
	f := newServerFixture(t)

	payload, err := json.Marshal(gin.H{
		"type": "user.created",
		"data": gin.H{
			"id":            "user_webhook_1",
			"email_address": "new@example.com",
			"first_name":    "New",
			"last_name":     "User",
		},
	})
	require.NoError(t, err)

	id := "msg_1"
	timestamp := fmt.Sprintf("%d", time.Now().Unix())

	req := httptest.NewRequest(http.MethodPost, "/webhooks/identity", bytes.NewReader(payload))
	req.Header.Set("svix-id", id)
	req.Header.Set("svix-timestamp", timestamp)
	req.Header.Set("svix-signature", signWebhook(id, timestamp, payload))

	rec := httptest.NewRecorder()
	f.server.Engine().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var account identitydomain.Account
	require.NoError(t, f.db.First(&account, "external_id = ?", "user_webhook_1").Error)
	require.Equal(t, "new@example.com", account.Email)

	// A bad signature is rejected before any state change.
	req = httptest.NewRequest(http.MethodPost, "/webhooks/identity", bytes.NewReader(payload))
	req.Header.Set("svix-id", id)
	req.Header.Set("svix-timestamp", timestamp)
	req.Header.Set("svix-signature", "v1,AAAA")

	rec = httptest.NewRecorder()
	f.server.Engine().ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

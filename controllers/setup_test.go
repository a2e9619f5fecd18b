package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Kariqs/nebula-api/cart"
	"github.com/Kariqs/nebula-api/initializers"
	"github.com/Kariqs/nebula-api/models"
	"github.com/Kariqs/nebula-api/payment"
	"github.com/Kariqs/nebula-api/routes"
	"github.com/Kariqs/nebula-api/storage"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testKeyID     = "rzp_test_key"
	testKeySecret = "rzp_test_secret"
)

// fakeRazorpay records order requests and answers like the orders API.
type fakeRazorpay struct {
	server *httptest.Server

	mu       sync.Mutex
	requests []map[string]any
	fail     bool
}

func newFakeRazorpay(t *testing.T) *fakeRazorpay {
	f := &fakeRazorpay{}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		if f.fail {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"code":"SERVER_ERROR"}}`))
			return
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.requests = append(f.requests, body)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":       fmt.Sprintf("order_test_%d", len(f.requests)),
			"entity":   "order",
			"amount":   body["amount"],
			"currency": body["currency"],
			"receipt":  body["receipt"],
			"status":   "created",
		})
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeRazorpay) setFail(fail bool) {
	f.mu.Lock()
	f.fail = fail
	f.mu.Unlock()
}

func (f *fakeRazorpay) lastRequest() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return nil
	}
	return f.requests[len(f.requests)-1]
}

type testEnv struct {
	t       *testing.T
	router  *gin.Engine
	gateway *fakeRazorpay
	db      *gorm.DB
}

func setupTest(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	t.Setenv("JWT_SECRET", "test-jwt-secret")
	t.Setenv("PAYMENT_CURRENCY", "")
	t.Setenv("FROM_EMAIL", "")
	t.Setenv("SMTP_ADDRESS", "")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	initializers.DB = db
	initializers.SyncDatabase()

	gateway := newFakeRazorpay(t)
	initializers.Carts = cart.NewMemoryStore(time.Hour)
	initializers.Payments = payment.NewRazorpay(testKeyID, testKeySecret, gateway.server.URL)
	initializers.Uploader = storage.NewLocalUploader(t.TempDir(), "/uploads")

	return &testEnv{
		t:       t,
		router:  routes.SetupRouter(gin.New()),
		gateway: gateway,
		db:      db,
	}
}

// testClient keeps the cart cookie and session token between requests, like
// a browser tab.
type testClient struct {
	env     *testEnv
	cookies map[string]*http.Cookie
	token   string
}

func (env *testEnv) client() *testClient {
	return &testClient{env: env, cookies: make(map[string]*http.Cookie)}
}

func (c *testClient) send(req *http.Request) *httptest.ResponseRecorder {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	c.env.router.ServeHTTP(w, req)

	for _, cookie := range w.Result().Cookies() {
		if cookie.MaxAge < 0 || cookie.Value == "" {
			delete(c.cookies, cookie.Name)
			continue
		}
		c.cookies[cookie.Name] = cookie
	}
	return w
}

func (c *testClient) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.env.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req)
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (env *testEnv) seedProduct(name, price string, sizes ...string) models.Product {
	env.t.Helper()
	product := models.Product{
		Name:     name,
		Brand:    "Nebula",
		Price:    decimal.RequireFromString(price),
		Image:    "/uploads/" + name + ".png",
		Images:   datatypes.JSONSlice[string]{"/uploads/" + name + ".png"},
		Category: "Running",
		Sizes:    datatypes.JSONSlice[string](sizes),
		InStock:  true,
	}
	require.NoError(env.t, env.db.Create(&product).Error)
	return product
}

func (env *testEnv) seedUser(email, password, role string) models.User {
	env.t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(env.t, err)

	user := models.User{Name: email, Email: email, Password: string(hashed), Role: role}
	require.NoError(env.t, env.db.Create(&user).Error)
	return user
}

// loginAs creates an account with role and returns a client holding its token.
func (env *testEnv) loginAs(email, role string) *testClient {
	env.t.Helper()
	env.seedUser(email, "password123", role)

	c := env.client()
	w := c.do(http.MethodPost, "/api/auth/login", map[string]any{"email": email, "password": "password123"})
	require.Equal(env.t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody[struct {
		Token string `json:"token"`
	}](env.t, w)
	require.NotEmpty(env.t, body.Token)
	c.token = body.Token
	return c
}

func (env *testEnv) order(id uint) models.Order {
	env.t.Helper()
	var order models.Order
	require.NoError(env.t, env.db.Preload("OrderItems").First(&order, id).Error)
	return order
}

func (env *testEnv) orderCount() int64 {
	env.t.Helper()
	var count int64
	require.NoError(env.t, env.db.Model(&models.Order{}).Count(&count).Error)
	return count
}

func customer() map[string]any {
	return map[string]any{
		"customerName":  "Ada Lovelace",
		"customerEmail": "ada@example.com",
		"customerPhone": "+91 98765 43210",
		"address":       "1 Orbit Way, Pune, MH, 411001",
	}
}

func withFields(base map[string]any, extra map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

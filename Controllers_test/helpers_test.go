package Controllers_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeremiapane/wildeats-cart/cart"
	"github.com/yeremiapane/wildeats-cart/database"
	"github.com/yeremiapane/wildeats-cart/models"
	"github.com/yeremiapane/wildeats-cart/notify"
	"github.com/yeremiapane/wildeats-cart/router"
	"github.com/yeremiapane/wildeats-cart/storage"
	"github.com/yeremiapane/wildeats-cart/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
}

type testApp struct {
	db       *gorm.DB
	router   *gin.Engine
	registry *cart.Registry
	slot     *storage.MemorySlot
	hub      *notify.Hub
}

func setupApp(t *testing.T) *testApp {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	_, err = database.SeedDemo(db)
	require.NoError(t, err)

	log, _ := test.NewNullLogger()
	slot := storage.NewMemorySlot()
	hub := notify.NewHub(log)
	registry := cart.NewRegistry(slot, "", log)
	registry.OnCreate = hub.Attach

	return &testApp{
		db:       db,
		registry: registry,
		slot:     slot,
		hub:      hub,
		router: router.SetupRouter(router.Dependencies{
			DB:       db,
			Registry: registry,
			Hub:      hub,
		}),
	}
}

type response struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (a *testApp) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, response) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var resp response
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w, resp
}

// newSession opens a session and returns its token and id.
func (a *testApp) newSession(t *testing.T) (string, string) {
	t.Helper()
	w, resp := a.do(t, http.MethodPost, "/session", "", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var data struct {
		SessionID string `json:"session_id"`
		Token     string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token, data.SessionID
}

func (a *testApp) itemID(t *testing.T, name string) int64 {
	t.Helper()
	var item models.MenuItem
	require.NoError(t, a.db.Where(&models.MenuItem{Name: name}).First(&item).Error)
	return int64(item.ID)
}

func (a *testApp) addonID(t *testing.T, name string) int64 {
	t.Helper()
	var addon models.MenuItemAddon
	require.NoError(t, a.db.Where(&models.MenuItemAddon{Name: name}).First(&addon).Error)
	return int64(addon.ID)
}

func (a *testApp) variantID(t *testing.T, name string) int64 {
	t.Helper()
	var v models.MenuItemVariant
	require.NoError(t, a.db.Where(&models.MenuItemVariant{Name: name}).First(&v).Error)
	return int64(v.ID)
}

type lineView struct {
	Key       string `json:"key"`
	ShopID    int64  `json:"shop_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

type cartView struct {
	Items        []lineView `json:"items"`
	TotalItems   int        `json:"total_items"`
	TotalPrice   string     `json:"total_price"`
	TotalDisplay string     `json:"total_display"`
	Degraded     bool       `json:"degraded"`
}

func decodeCart(t *testing.T, raw json.RawMessage) cartView {
	t.Helper()
	var view cartView
	require.NoError(t, json.Unmarshal(raw, &view))
	return view
}

// addItem posts to /cart/items and returns the line key and resulting cart.
func (a *testApp) addItem(t *testing.T, token string, body map[string]interface{}) (string, cartView) {
	t.Helper()
	w, resp := a.do(t, http.MethodPost, "/cart/items", token, body)
	require.Equal(t, http.StatusCreated, w.Code, resp.Message)
	var data struct {
		Key  string          `json:"key"`
		Cart json.RawMessage `json:"cart"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	return data.Key, decodeCart(t, data.Cart)
}

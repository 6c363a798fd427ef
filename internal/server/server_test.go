package server_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"cascade-softdelete/internal/bootstrap"
	"cascade-softdelete/internal/config"
	"cascade-softdelete/internal/model"
	"cascade-softdelete/internal/server"
	"cascade-softdelete/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	cfg := &config.Config{
		App: config.AppConfig{
			Port:               "0",
			Environment:        "development",
			LogFilePath:        filepath.Join(t.TempDir(), "softdelete.log"),
			CorsAllowedOrigins: "http://localhost:5173",
			JwtSecret:          testSecret,
		},
		Events: config.EventsConfig{Topic: "soft_delete_events_test"},
	}
	container, err := bootstrap.NewContainer(db, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Close() })

	return server.New(cfg, container).GetApp(), db
}

func token(t *testing.T, userId uuid.UUID) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userId.String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func do(t *testing.T, app *fiber.App, method, path, bearer string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	return resp.StatusCode, env
}

func seedCompany(t *testing.T, db *gorm.DB, owner uuid.UUID) *model.Company {
	t.Helper()
	company := &model.Company{CompanyName: "Acme", UserId: &owner}
	require.NoError(t, db.Create(company).Error)
	for i := 0; i < 2; i++ {
		quote := &model.Quote{Name: fmt.Sprintf("quote %d", i), CompanyId: company.Id, UserId: &owner}
		require.NoError(t, db.Create(quote).Error)
	}
	return company
}

func TestSoftDeleteRoutes(t *testing.T) {
	app, db := newTestServer(t)
	owner := uuid.New()
	company := seedCompany(t, db, owner)
	bearer := token(t, owner)
	companyPath := "/api/cascade-soft-delete/v1/Company/" + company.Id.String()

	t.Run("missing token", func(t *testing.T) {
		code, env := do(t, app, http.MethodPost, companyPath, "")
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.False(t, env.Success)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": owner.String()})
		signed, err := tok.SignedString([]byte("other"))
		require.NoError(t, err)

		code, _ := do(t, app, http.MethodPost, companyPath, signed)
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("check does not change anything", func(t *testing.T) {
		code, env := do(t, app, http.MethodGet, companyPath+"/check", bearer)
		require.Equal(t, http.StatusOK, code)

		var data map[string]interface{}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, float64(3), data["result"])

		var company model.Company
		require.NoError(t, db.First(&company, "id = ?", data["key"]).Error)
		assert.Equal(t, uint8(0), company.SoftDeleteLevel)
	})

	t.Run("other user cannot see the company", func(t *testing.T) {
		code, env := do(t, app, http.MethodPost, companyPath, token(t, uuid.New()))
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "Could not find the entry you ask for.", env.Message)
	})

	t.Run("cascade set and list", func(t *testing.T) {
		code, env := do(t, app, http.MethodPost, companyPath, bearer)
		require.Equal(t, http.StatusOK, code)
		assert.True(t, env.Success)

		var data map[string]interface{}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, float64(3), data["result"])

		code, env = do(t, app, http.MethodGet, "/api/cascade-soft-delete/v1/Company", bearer)
		require.Equal(t, http.StatusOK, code)

		var list struct {
			Entries []struct {
				Key             uuid.UUID `json:"key"`
				SoftDeleteLevel uint8     `json:"soft_delete_level"`
			} `json:"entries"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &list))
		require.Len(t, list.Entries, 1)
		assert.Equal(t, company.Id, list.Entries[0].Key)
		assert.Equal(t, uint8(1), list.Entries[0].SoftDeleteLevel)
	})

	t.Run("cascade reset", func(t *testing.T) {
		code, env := do(t, app, http.MethodDelete, companyPath, bearer)
		require.Equal(t, http.StatusOK, code)

		var data map[string]interface{}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, float64(3), data["result"])
	})

	t.Run("invalid key", func(t *testing.T) {
		code, env := do(t, app, http.MethodPost, "/api/cascade-soft-delete/v1/Company/not-a-uuid", bearer)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.False(t, env.Success)
	})

	t.Run("type without cascade support", func(t *testing.T) {
		code, _ := do(t, app, http.MethodPost, "/api/cascade-soft-delete/v1/Review/"+uuid.NewString(), bearer)
		assert.Equal(t, http.StatusInternalServerError, code)
	})

	t.Run("single soft delete of a book", func(t *testing.T) {
		book := &model.Book{Title: "Dune", UserId: &owner}
		require.NoError(t, db.Create(book).Error)

		code, env := do(t, app, http.MethodPost, "/api/soft-delete/v1/Book/"+book.Id.String(), bearer)
		require.Equal(t, http.StatusOK, code)
		var data map[string]interface{}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, float64(1), data["result"])

		code, env = do(t, app, http.MethodGet, "/api/soft-delete/v1/Book?limit=10", bearer)
		require.Equal(t, http.StatusOK, code)
		var list struct {
			Entries []map[string]interface{} `json:"entries"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &list))
		assert.Len(t, list.Entries, 1)
	})

	t.Run("limit out of range", func(t *testing.T) {
		code, _ := do(t, app, http.MethodGet, "/api/soft-delete/v1/Book?limit=0", bearer)
		assert.Equal(t, http.StatusBadRequest, code)
	})
}

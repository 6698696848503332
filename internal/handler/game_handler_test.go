package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pct-cclausen/huntkeeper/internal/config"
	"github.com/pct-cclausen/huntkeeper/internal/model"
	"github.com/pct-cclausen/huntkeeper/internal/service"
	"github.com/pct-cclausen/huntkeeper/internal/store"
	"github.com/pct-cclausen/huntkeeper/pkg/crypto"
	"github.com/pct-cclausen/huntkeeper/pkg/token"
)

const gamePassword = "test"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := crypto.HashPassword(gamePassword)
	require.NoError(t, err)

	snapStore := store.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	svc, err := service.NewGameService(context.Background(), snapStore, token.NewManager("secret"), hash)
	require.NoError(t, err)

	cfg := &config.Config{}
	return SetupRouter(cfg, zap.NewNop(), NewGameHandler(svc))
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestScavengerHuntEndToEnd(t *testing.T) {
	router := newTestRouter(t)

	// Issue a code.
	w := doJSON(t, router, http.MethodPost, "/api/create-qr-code", gin.H{
		"description": "tree",
		"points":      5,
		"key":         gamePassword,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var signed string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &signed))
	require.NotEmpty(t, signed)

	// First scan scores.
	w = doJSON(t, router, http.MethodPost, "/api/add-points", gin.H{
		"jwtScanned": signed,
		"groupName":  "Foxes",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result model.RedemptionResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.NotNil(t, result.QRCodeFound)
	require.Equal(t, model.Code{ID: 1, Description: "tree", Points: 5}, *result.QRCodeFound)
	require.True(t, result.ScannedFirst)

	// Second scan by the same group does not.
	w = doJSON(t, router, http.MethodPost, "/api/add-points", gin.H{
		"jwtScanned": signed,
		"groupName":  "Foxes",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.False(t, result.ScannedFirst)

	// Leaderboard shows the single score.
	w = doJSON(t, router, http.MethodGet, "/api/highscores", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var standings []model.Standing
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &standings))
	require.Equal(t, []model.Standing{{Name: "Foxes", Points: 5}}, standings)
}

func TestCreateQRCodeRejectsWrongKey(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/create-qr-code", gin.H{
		"description": "tree",
		"points":      5,
		"key":         "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotContains(t, w.Body.String(), "eyJ")

	// The failed attempt must not have grown the registry.
	w = doJSON(t, router, http.MethodGet, "/api/highscores", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, "[]", w.Body.String())
}

func TestAddPointsSwallowsForgedTokens(t *testing.T) {
	router := newTestRouter(t)

	forged, err := token.NewManager("not-the-secret").Mint(1)
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodPost, "/api/add-points", gin.H{
		"jwtScanned": forged,
		"groupName":  "Foxes",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"qrCodeFound":null,"scannedFirst":false}`, w.Body.String())
}

func TestAddPointsRejectsMalformedBody(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/add-points", gin.H{
		"groupName": "Foxes",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

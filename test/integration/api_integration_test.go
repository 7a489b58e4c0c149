package integration

import (
	"bytes"
	"encoding/json"
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"cereal-api/internal/handler"
	"cereal-api/internal/model"
	"cereal-api/internal/repository"
	"cereal-api/internal/router"
	"cereal-api/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestServer(t *testing.T, testDB *TestDB) http.Handler {
	t.Helper()

	logger := zerolog.Nop()

	cerealRepo := repository.NewCerealRepository(testDB.Pool, logger)
	userRepo := repository.NewUserRepository(testDB.Pool, logger)

	cerealService := service.NewCerealService(cerealRepo, logger)
	userService := service.NewUserService(userRepo, logger)

	cerealHandler := handler.NewCerealHandler(cerealService, logger)
	userHandler := handler.NewUserHandler(userService, logger)

	return router.New(cerealHandler, userHandler, logger)
}

func doJSON(t *testing.T, server http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func decodeCereals(t *testing.T, w *httptest.ResponseRecorder) []model.Cereal {
	t.Helper()

	var cereals []model.Cereal
	require.NoError(t, json.NewDecoder(w.Body).Decode(&cereals))
	return cereals
}

func TestCerealAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	t.Run("GET /cereals returns all cereals", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCereals(t, testDB.Pool)

		w := doJSON(t, server, http.MethodGet, "/cereals", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeCereals(t, w), 4)
	})

	t.Run("GET /cereals filters by numeric column", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCereals(t, testDB.Pool)

		w := doJSON(t, server, http.MethodGet, "/cereals?column=calories&value=100&operator=%3E", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		cereals := decodeCereals(t, w)
		require.Len(t, cereals, 1)
		assert.Equal(t, "Cheerios", cereals[0].Name)
	})

	t.Run("GET /cereals filters by text column", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCereals(t, testDB.Pool)

		w := doJSON(t, server, http.MethodGet, "/cereals?column=mfr&value=K", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		cereals := decodeCereals(t, w)
		require.Len(t, cereals, 1)
		assert.Equal(t, "Corn Flakes", cereals[0].Name)
	})

	t.Run("GET /cereals with unknown operator falls back to equality", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCereals(t, testDB.Pool)

		w := doJSON(t, server, http.MethodGet, "/cereals?column=calories&value=100&operator=like", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		cereals := decodeCereals(t, w)
		assert.Len(t, cereals, 2)
	})

	t.Run("GET /cereals sorts text ascending", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCereals(t, testDB.Pool)

		w := doJSON(t, server, http.MethodGet, "/cereals?sort_by=name", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		cereals := decodeCereals(t, w)
		require.Len(t, cereals, 4)
		assert.Equal(t, "100% Bran", cereals[0].Name)
		assert.Equal(t, "Maypo", cereals[3].Name)
	})

	t.Run("GET /cereals sorts numeric descending", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCereals(t, testDB.Pool)

		w := doJSON(t, server, http.MethodGet, "/cereals?sort_by=rating", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		cereals := decodeCereals(t, w)
		require.Len(t, cereals, 4)
		assert.Equal(t, "100% Bran", cereals[0].Name)
		assert.Equal(t, "Corn Flakes", cereals[3].Name)
	})

	t.Run("GET /cereals rejects unknown sort column", func(t *testing.T) {
		w := doJSON(t, server, http.MethodGet, "/cereals?sort_by=price", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GET /cereals rejects unknown filter column", func(t *testing.T) {
		w := doJSON(t, server, http.MethodGet, "/cereals?column=password&value=x", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GET /cereals/{id} returns one cereal", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		seeded := SeedCereals(t, testDB.Pool)

		w := doJSON(t, server, http.MethodGet, "/cereals/"+strconv.Itoa(seeded[1].ID), nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var cereal model.Cereal
		require.NoError(t, json.NewDecoder(w.Body).Decode(&cereal))
		assert.Equal(t, "Cheerios", cereal.Name)
	})

	t.Run("GET /cereals/{id} for missing record is 404", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		w := doJSON(t, server, http.MethodGet, "/cereals/99999", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("POST /cereals without id inserts", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		w := doJSON(t, server, http.MethodPost, "/cereals", model.CerealRequest{
			Name: "Trix", Mfr: "G", Type: "C", Calories: 110, Protein: 1,
			Sodium: 140, Carbo: 13, Sugars: 12, Potass: 25, Vitamins: 25,
			Shelf: 2, Weight: 1, Cups: 1, Rating: 27753301,
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var created model.Cereal
		require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
		assert.NotZero(t, created.ID)
		assert.Equal(t, "Trix", created.Name)
	})

	t.Run("POST /cereals with id overwrites the record", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		seeded := SeedCereals(t, testDB.Pool)

		id := seeded[0].ID
		w := doJSON(t, server, http.MethodPost, "/cereals", model.CerealRequest{
			ID: &id, Name: "100% Bran", Mfr: "N", Type: "C", Calories: 75,
			Protein: 4, Fat: 1, Sodium: 130, Fiber: 10, Carbo: 5, Sugars: 6,
			Potass: 280, Vitamins: 25, Shelf: 3, Weight: 1, Cups: 0.33,
			Rating: 68402973,
		})

		assert.Equal(t, http.StatusOK, w.Code)

		fetched := doJSON(t, server, http.MethodGet, "/cereals/"+strconv.Itoa(id), nil)
		var cereal model.Cereal
		require.NoError(t, json.NewDecoder(fetched.Body).Decode(&cereal))
		assert.Equal(t, 75, cereal.Calories)
	})

	t.Run("POST /cereals with unknown id is 404", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		id := 99999
		w := doJSON(t, server, http.MethodPost, "/cereals", model.CerealRequest{
			ID: &id, Name: "Ghost", Mfr: "G", Type: "C",
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("DELETE /cereals/{name} removes the record", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCereals(t, testDB.Pool)

		w := doJSON(t, server, http.MethodDelete, "/cereals/Cheerios", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		remaining := doJSON(t, server, http.MethodGet, "/cereals", nil)
		assert.Len(t, decodeCereals(t, remaining), 3)
	})

	t.Run("DELETE /cereals/{name} for missing record is 404", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		w := doJSON(t, server, http.MethodDelete, "/cereals/Ghost", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUserAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	t.Run("POST /register creates the root user", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		w := doJSON(t, server, http.MethodPost, "/register", model.RegisterRequest{
			Username: "root", Password: "12345678",
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var count int
		err := testDB.Pool.QueryRow(context.Background(),
			"SELECT COUNT(*) FROM users WHERE username = 'root'").Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("POST /register rejects other usernames", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		w := doJSON(t, server, http.MethodPost, "/register", model.RegisterRequest{
			Username: "admin", Password: "12345678",
		})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("POST /register rejects short passwords", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		w := doJSON(t, server, http.MethodPost, "/register", model.RegisterRequest{
			Username: "root", Password: "1234567",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("POST /register rejects a duplicate", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		first := doJSON(t, server, http.MethodPost, "/register", model.RegisterRequest{
			Username: "root", Password: "12345678",
		})
		require.Equal(t, http.StatusOK, first.Code)

		second := doJSON(t, server, http.MethodPost, "/register", model.RegisterRequest{
			Username: "root", Password: "12345678",
		})
		assert.Equal(t, http.StatusBadRequest, second.Code)
	})
}


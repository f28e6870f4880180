package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibliosmart/bibliosmart/internal/library"
	"github.com/bibliosmart/bibliosmart/internal/reports"
)

func TestReportsController_Available(t *testing.T) {
	store, service, cleanup := setupControllerTest(t)
	defer cleanup()

	free, err := service.AddBook(library.AddBookInput{Title: "Free Book", Author: "A"})
	require.NoError(t, err)
	loaned, err := service.AddBook(library.AddBookInput{Title: "Loaned Book", Author: "B"})
	require.NoError(t, err)
	reader, err := service.AddReader(library.AddReaderInput{Name: "Ana"})
	require.NoError(t, err)
	_, err = service.CreateLoan(loaned.ID, reader.ID, "2030-06-01")
	require.NoError(t, err)

	controller := NewReportsController(store)

	router := gin.New()
	router.GET("/api/reports/available", controller.Available)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/reports/available", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Books []struct {
			ID string `json:"id"`
		} `json:"books"`
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, 1, response.Count)
	assert.Equal(t, free.ID, response.Books[0].ID)
}

func TestReportsController_Genres(t *testing.T) {
	store, service, cleanup := setupControllerTest(t)
	defer cleanup()

	_, err := service.AddBook(library.AddBookInput{Title: "Fiction One", Author: "A", Genre: "Fiction"})
	require.NoError(t, err)
	_, err = service.AddBook(library.AddBookInput{Title: "No Genre", Author: "B"})
	require.NoError(t, err)

	controller := NewReportsController(store)

	router := gin.New()
	router.GET("/api/reports/genres", controller.Genres)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/reports/genres", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Groups []reports.GenreGroup `json:"groups"`
		Count  int                  `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, 2, response.Count)
	assert.Equal(t, "Fiction", response.Groups[0].Genre)
	assert.Equal(t, reports.UncategorizedGenre, response.Groups[1].Genre)
}

func TestReportsController_Returns(t *testing.T) {
	store, service, cleanup := setupControllerTest(t)
	defer cleanup()

	book, err := service.AddBook(library.AddBookInput{Title: "Due Book", Author: "A"})
	require.NoError(t, err)
	other, err := service.AddBook(library.AddBookInput{Title: "Later Book", Author: "B"})
	require.NoError(t, err)
	reader, err := service.AddReader(library.AddReaderInput{Name: "Ana"})
	require.NoError(t, err)

	_, err = service.CreateLoan(book.ID, reader.ID, "2030-06-01")
	require.NoError(t, err)
	_, err = service.CreateLoan(other.ID, reader.ID, "2030-06-15")
	require.NoError(t, err)

	controller := NewReportsController(store)

	router := gin.New()
	router.GET("/api/reports/returns", controller.Returns)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/reports/returns?date=2030-06-01", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Date  string             `json:"date"`
		Loans []reports.LoanView `json:"loans"`
		Count int                `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "2030-06-01", response.Date)
	require.Equal(t, 1, response.Count)
	assert.Equal(t, "Due Book", response.Loans[0].BookTitle)
}

func TestReportsController_Returns_BadDate(t *testing.T) {
	store, _, cleanup := setupControllerTest(t)
	defer cleanup()

	controller := NewReportsController(store)

	router := gin.New()
	router.GET("/api/reports/returns", controller.Returns)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/reports/returns?date=tomorrow", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportsController_Returns_DefaultsToToday(t *testing.T) {
	store, _, cleanup := setupControllerTest(t)
	defer cleanup()

	controller := NewReportsController(store)

	router := gin.New()
	router.GET("/api/reports/returns", controller.Returns)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/reports/returns", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Date string `json:"date"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, time.Now().Format(library.DueDateLayout), response.Date)
}

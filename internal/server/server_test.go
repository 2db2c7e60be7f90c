package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gowbeam/internal/aisc"
	"github.com/alexiusacademia/gowbeam/internal/catalog"
)

func testStore() *catalog.Store {
	store := &catalog.Store{}
	store.Set(catalog.New([]catalog.Shape{
		{
			Name: "W12X26",
			D:    catalog.Some(12.2), Bf: catalog.Some(6.49),
			Tf: catalog.Some(0.38), Tw: catalog.Some(0.23),
		},
		{
			Name: "W12X40",
			D:    catalog.Some(11.9), Bf: catalog.Some(8.01),
			Tf: catalog.Some(0.515), Tw: catalog.Some(0.295),
		},
		{
			Name: "W10X12",
			D:    catalog.Some(9.87), Bf: catalog.Some(3.96), Tf: catalog.Some(0.21),
		},
	}))
	return store
}

func testServer(store *catalog.Store) http.Handler {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	a992, _ := aisc.LookupGrade("A992")
	return New(logrus.NewEntry(logger), store, a992, aisc.E).Router()
}

func get(t *testing.T, h http.Handler, url string, out interface{}) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, url, nil))
	if out != nil {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), out), rr.Body.String())
	}
	return rr
}

func TestHealthz(t *testing.T) {
	rr := get(t, testServer(testStore()), "/healthz", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
}

func TestRequestID(t *testing.T) {
	h := testServer(testStore())

	rr := get(t, h, "/healthz", nil)
	assert.NotEmpty(t, rr.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
}

func TestGrades(t *testing.T) {
	var resp gradesResponse
	rr := get(t, testServer(testStore()), "/grades", &resp)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "A992", resp.Default)
	assert.Len(t, resp.Grades, len(aisc.Grades))
}

func TestSuggest(t *testing.T) {
	h := testServer(testStore())

	var resp suggestResponse
	rr := get(t, h, "/shapes/suggest?q=w12", &resp)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"W12X26", "W12X40"}, resp.Suggestions)

	resp = suggestResponse{}
	get(t, h, "/shapes/suggest", &resp)
	assert.NotNil(t, resp.Suggestions)
	assert.Empty(t, resp.Suggestions)
}

func TestGetShape(t *testing.T) {
	h := testServer(testStore())

	var resp shapeResponse
	rr := get(t, h, "/shapes/W12X26", &resp)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "W12X26", resp.Name)
	assert.Empty(t, resp.Error)
	require.NotEmpty(t, resp.Properties)
	assert.Equal(t, "7.56", resp.Properties[0].Text)

	var missing Response
	rr = get(t, h, "/shapes/W99X1", &missing)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
	assert.Contains(t, missing.Message, "W99X1")
}

func TestGetShapeUnderivable(t *testing.T) {
	var resp shapeResponse
	rr := get(t, testServer(testStore()), "/shapes/W10X12", &resp)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, resp.Error, "tw")
	assert.Empty(t, resp.Properties)
}

func TestGetLr(t *testing.T) {
	testCases := []struct {
		id       string
		url      string
		grade    string
		custom   bool
		expected string
	}{
		{id: "default grade", url: "/shapes/W12X26/lr", grade: "A992", expected: "26.34 in"},
		{id: "named grade", url: "/shapes/W12X26/lr?grade=A36", grade: "A36"},
		{id: "custom fy", url: "/shapes/W12X26/lr?fy=65", grade: "A992", custom: true, expected: "22.50 in"},
		{id: "custom fy wins over grade", url: "/shapes/W12X26/lr?grade=A36&fy=65", grade: "A36", custom: true, expected: "22.50 in"},
	}

	h := testServer(testStore())
	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			var resp lrResponse
			rr := get(t, h, tc.url, &resp)
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
			assert.Equal(t, "W12X26", resp.Name)
			assert.Equal(t, tc.grade, resp.Grade)
			assert.Equal(t, tc.custom, resp.CustomFy)
			if tc.expected != "" {
				assert.Equal(t, tc.expected, resp.LrInText)
			}
			assert.Len(t, resp.Terms, 5)
		})
	}
}

func TestGetLrErrors(t *testing.T) {
	testCases := []struct {
		id     string
		url    string
		status int
	}{
		{id: "unknown shape", url: "/shapes/W1X1/lr", status: http.StatusNotFound},
		{id: "unknown grade", url: "/shapes/W12X26/lr?grade=A500", status: http.StatusUnprocessableEntity},
		{id: "zero fy", url: "/shapes/W12X26/lr?fy=0", status: http.StatusUnprocessableEntity},
		{id: "empty fy", url: "/shapes/W12X26/lr?fy=", status: http.StatusUnprocessableEntity},
		{id: "text fy", url: "/shapes/W12X26/lr?fy=fifty", status: http.StatusUnprocessableEntity},
		{id: "missing dimension", url: "/shapes/W10X12/lr", status: http.StatusUnprocessableEntity},
	}

	h := testServer(testStore())
	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			var resp Response
			rr := get(t, h, tc.url, &resp)
			assert.Equal(t, tc.status, rr.Code, rr.Body.String())
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestCatalogNotLoaded(t *testing.T) {
	h := testServer(&catalog.Store{})

	for _, url := range []string{"/shapes/suggest?q=w", "/shapes/W12X26", "/shapes/W12X26/lr"} {
		var resp Response
		rr := get(t, h, url, &resp)
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code, url)
		assert.Contains(t, resp.Message, catalog.ErrNotLoaded.Error())
	}
}

func TestCatalogLoading(t *testing.T) {
	release := make(chan struct{})
	src := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte("Shape,d,bf,tf,tw\nW12X26,12.2,6.49,0.38,0.23\n"))
	}))
	defer src.Close()
	defer close(release)

	store := &catalog.Store{}
	done := make(chan error, 1)
	go func() { done <- store.Load(context.Background(), src.URL) }()
	require.Eventually(t, func() bool { return store.State() == catalog.Loading }, 2*time.Second, 5*time.Millisecond)

	h := testServer(store)

	var resp Response
	rr := get(t, h, "/shapes/W12X26/lr", &resp)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	release <- struct{}{}
	require.NoError(t, <-done)

	var lr lrResponse
	rr = get(t, h, "/shapes/W12X26/lr", &lr)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "26.34 in", lr.LrInText)
}

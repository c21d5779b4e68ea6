package seedproducts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	count int
	err   error
}

func (m *mockService) SeedProducts(_ context.Context) (int, error) {
	return m.count, m.err
}

func doSeed(svc *mockService) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/seed", nil)
	w := httptest.NewRecorder()
	SeedProducts(w, req, svc)
	return w
}

func TestSeedProductsFirstRun(t *testing.T) {
	w := doSeed(&mockService{count: 3})

	require.Equal(t, http.StatusOK, w.Code)

	var resp seedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Seeded)
	assert.Equal(t, 3, resp.Count)
}

func TestSeedProductsAlreadySeeded(t *testing.T) {
	w := doSeed(&mockService{count: 0})

	require.Equal(t, http.StatusOK, w.Code)

	var resp seedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Seeded)
	assert.Equal(t, "Products already exist", resp.Message)
}

func TestSeedProductsError(t *testing.T) {
	w := doSeed(&mockService{err: assert.AnError})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

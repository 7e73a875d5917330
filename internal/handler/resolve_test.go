package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"sf-tree-identifier/internal/address"
	"sf-tree-identifier/internal/matcher"
	"sf-tree-identifier/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAddressService is a mock implementation of the AddressService interface
type MockAddressService struct {
	mock.Mock
}

func (m *MockAddressService) Resolve(ctx context.Context, query string) (address.Address, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(address.Address), args.Error(1)
}

func TestResolveHandler_Resolve(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		query          string
		mockAddr       address.Address
		mockError      error
		expectedStatus int
		expectedBody   any
	}{
		{
			name:           "missing query parameter",
			query:          "",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]any{"error": "missing required query parameter 'q'", "kind": "invalid_address"},
		},
		{
			name:           "successful resolve",
			query:          "272 Capp St, San Francisco, CA 94110",
			mockAddr:       address.Address{StreetNumber: "272", StreetName: "capp st"},
			expectedStatus: http.StatusOK,
			expectedBody: map[string]any{
				"query":         "272 Capp St, San Francisco, CA 94110",
				"address":       "272 capp st",
				"street_number": "272",
				"street_name":   "capp st",
			},
		},
		{
			name:           "too short",
			query:          "123 Valencia",
			mockError:      &address.AddressLengthError{AddressError: address.AddressError{Input: "123 valencia"}, Tokens: 2},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody: map[string]any{
				"error": "invalid address: give a street number, street name and street type",
				"kind":  "invalid_address",
			},
		},
		{
			name:           "unknown street",
			query:          "1468 Example St",
			mockError:      &matcher.NoCloseMatchError{Input: "example st"},
			expectedStatus: http.StatusNotFound,
			expectedBody: map[string]any{
				"error": `street "example st" not found`,
				"kind":  "unknown_street",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockAddressService)
			handler := NewResolveHandler(mockSvc)

			if tt.query != "" {
				mockSvc.On("Resolve", mock.Anything, tt.query).Return(tt.mockAddr, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodGet, "/resolve?q="+url.QueryEscape(tt.query), nil)
			w := httptest.NewRecorder()

			c, _ := gin.CreateTestContext(w)
			c.Request = req

			handler.Resolve(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var actualBody any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &actualBody))
			assert.Equal(t, tt.expectedBody, actualBody)

			mockSvc.AssertExpectations(t)
		})
	}
}

type resolverFunc func(raw string) (address.Address, error)

func (f resolverFunc) ResolveForQuery(raw string) (address.Address, error) { return f(raw) }

func TestResolveHandler_OversizedQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	called := false
	svc := service.NewAddressService(resolverFunc(func(string) (address.Address, error) {
		called = true
		return address.Address{}, nil
	}))
	handler := NewResolveHandler(svc)

	q := "1468 " + strings.Repeat("valencia ", 10000) + "st"
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/resolve?q="+url.QueryEscape(q), nil)

	handler.Resolve(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.False(t, called)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "invalid_address", string(body.Kind))
	assert.NotContains(t, body.Error, "valencia")
}

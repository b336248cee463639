package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alimikegami/point-of-sales/catalog-service/config"
)

// InitServer registers the prometheus collectors globally, so the server is
// built once for every case.
func TestInitServer(t *testing.T) {
	app := App{Config: &config.Config{ServicePort: "0", JWTSecret: "test-secret"}}
	require.NoError(t, app.InitServer())
	t.Cleanup(func() { _ = app.StopServer() })

	testCases := []struct {
		Name         string
		Target       string
		ExpectedCode int
		ExpectedBody string
	}{
		{
			Name:         "ping",
			Target:       "/api/v1/ping",
			ExpectedCode: http.StatusOK,
			ExpectedBody: `{"status":"success","message":"Hello, World!","data":null}`,
		},
		{
			Name:         "protected route without token",
			Target:       "/api/v1/products",
			ExpectedCode: http.StatusUnauthorized,
			ExpectedBody: `{"status":"error","message":"Invalid or expired JWT"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			app.Server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.Target, nil))

			assert.Equal(t, tc.ExpectedCode, rec.Code)
			assert.JSONEq(t, tc.ExpectedBody, rec.Body.String())
		})
	}
}

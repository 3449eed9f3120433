package permissions_test

import (
	"net/http"
	"testing"

	"workforce/permissions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePath(t *testing.T) {
	tests := map[string]string{
		"/v1/lodgings/{id}": "/lodgings/{id}",
		"/lodgings/":        "/lodgings",
		"/v1":               "/",
		"/":                 "/",
		"/invoices":         "/invoices",
	}

	for in, want := range tests {
		assert.Equal(t, want, permissions.NormalizePath(in), in)
	}
}

func TestEmbeddedPermissions(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	t.Run("lodging mutations are admin only", func(t *testing.T) {
		for _, method := range []string{http.MethodPut, http.MethodPatch, http.MethodDelete} {
			perm := data.FindPermissions("/v1/lodgings/{id}", method)
			assert.Equal(t, []string{"admin"}, perm.Permissions, method)
		}

		assert.Equal(t, []string{"admin"}, data.FindPermissions("/lodgings", http.MethodPost).Permissions)
	})

	t.Run("invoice reads admit users", func(t *testing.T) {
		perm := data.FindPermissions("/v1/invoices/{id}", http.MethodGet)
		assert.ElementsMatch(t, []string{"user", "admin"}, perm.Permissions)
	})

	t.Run("unknown route has no entry", func(t *testing.T) {
		assert.Empty(t, data.FindPermissions("/v1/nowhere", http.MethodGet).Permissions)
	})

	t.Run("method match ignores case", func(t *testing.T) {
		assert.NotEmpty(t, data.FindPermissions("/bookings", "post").Permissions)
	})
}

func TestParseRejectsMalformed(t *testing.T) {
	_, err := permissions.Parse([]byte("{"))
	assert.Error(t, err)
}

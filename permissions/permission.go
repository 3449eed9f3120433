package permissions

import (
	_ "embed"
	"encoding/json"
	"slices"
	"strings"

	"workforce/shared/constant"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission lists the roles allowed on one route. An empty list admits any authenticated user.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`
}

// FindPermissions looks up a chi route pattern. Versioned and unversioned mounts share one entry.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	path = NormalizePath(path)

	idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
		return rp.Path == path && strings.EqualFold(rp.Method, method)
	})

	if idx == -1 {
		return Permission{}
	}

	return r.Endpoints[idx]
}

// NormalizePath strips the API version prefix and any trailing slash.
func NormalizePath(path string) string {
	path = strings.TrimPrefix(path, constant.APIVersionPrefix)

	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	if path == "" {
		return "/"
	}

	return path
}

func Parse(data []byte) (*PermissionData, error) {
	var permissions PermissionData

	if err := json.Unmarshal(data, &permissions); err != nil {
		return nil, err //nolint:wrapcheck
	}

	return &permissions, nil
}

func Get() *PermissionData {
	permissions, err := Parse(permissionsData)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return permissions
}

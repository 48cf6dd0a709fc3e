package permissions

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"rental/shared/constant"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

var (
	ErrDuplicateEndpoint = errors.New("duplicate endpoint")
	ErrUnknownRole       = errors.New("unknown role")
	ErrUnknownMethod     = errors.New("unknown method")
)

var (
	knownRoles   = []string{constant.RoleAdmin, constant.RoleStaff, constant.RoleCustomer}
	knownMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}
)

// Permission is one route entry. Skip marks a public route, an empty
// Permissions list admits any authenticated role.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]Permission
}

func endpointKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}

// Find returns the entry for a route pattern, or the zero Permission when none is declared.
func (r *PermissionData) Find(path, method string) Permission {
	if r == nil {
		return Permission{}
	}

	return r.index[endpointKey(method, path)]
}

// Load decodes a permission table and rejects unknown roles, unknown methods
// and repeated method/path pairs.
func Load(data []byte) (*PermissionData, error) {
	var permissions PermissionData

	if err := json.Unmarshal(data, &permissions); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}

	permissions.index = make(map[string]Permission, len(permissions.Endpoints))

	for _, endpoint := range permissions.Endpoints {
		if !slices.Contains(knownMethods, strings.ToUpper(endpoint.Method)) {
			return nil, fmt.Errorf("%w: %s %s", ErrUnknownMethod, endpoint.Method, endpoint.Path)
		}

		for _, role := range endpoint.Permissions {
			if !slices.Contains(knownRoles, role) {
				return nil, fmt.Errorf("%w %q on %s %s", ErrUnknownRole, role, endpoint.Method, endpoint.Path)
			}
		}

		key := endpointKey(endpoint.Method, endpoint.Path)
		if _, ok := permissions.index[key]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEndpoint, key)
		}

		permissions.index[key] = endpoint
	}

	return &permissions, nil
}

// Get loads the embedded table. A broken table stops the process.
func Get() *PermissionData {
	permissions, err := Load(permissionsData)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load embedded permissions")
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return permissions
}

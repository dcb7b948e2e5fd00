package schema

import "time"

// ApplicationType is the kind of client an application represents.
type ApplicationType string

const (
	ApplicationTypeNative           ApplicationType = "Native"
	ApplicationTypeSPA              ApplicationType = "SPA"
	ApplicationTypeTraditional      ApplicationType = "Traditional"
	ApplicationTypeMachineToMachine ApplicationType = "MachineToMachine"
)

// Valid reports whether t is a known application type.
func (t ApplicationType) Valid() bool {
	switch t {
	case ApplicationTypeNative, ApplicationTypeSPA, ApplicationTypeTraditional, ApplicationTypeMachineToMachine:
		return true
	}
	return false
}

// Application is a row of the applications table.
type Application struct {
	ID                   string          `db:"id" json:"id"`
	Name                 string          `db:"name" json:"name"`
	Secret               string          `db:"secret" json:"secret"`
	Description          *string         `db:"description" json:"description"`
	Type                 ApplicationType `db:"type" json:"type"`
	OidcClientMetadata   map[string]any  `db:"oidc_client_metadata" json:"oidcClientMetadata"`
	CustomClientMetadata map[string]any  `db:"custom_client_metadata" json:"customClientMetadata"`
	IsThirdParty         bool            `db:"is_third_party" json:"isThirdParty"`
	CreatedAt            time.Time       `db:"created_at" json:"createdAt"`
}

// Applications describes the applications table.
var Applications = MustNew(Definition{
	Table:         "applications",
	TableSingular: "application",
	Fields: map[string]string{
		"id":                   "id",
		"name":                 "name",
		"secret":               "secret",
		"description":          "description",
		"type":                 "type",
		"oidcClientMetadata":   "oidc_client_metadata",
		"customClientMetadata": "custom_client_metadata",
		"isThirdParty":         "is_third_party",
		"createdAt":            "created_at",
	},
	FieldKeys: []string{
		"id", "name", "secret", "description", "type",
		"oidcClientMetadata", "customClientMetadata", "isThirdParty", "createdAt",
	},
	Required: []string{"id", "name", "secret", "type"},
	JSON:     []string{"oidcClientMetadata", "customClientMetadata"},
})

// CreateApplication holds the fields accepted when creating an application.
// CreatedAt is normally left to the database default.
type CreateApplication struct {
	ID                   string
	Name                 string
	Secret               string
	Description          *string
	Type                 ApplicationType
	OidcClientMetadata   map[string]any
	CustomClientMetadata map[string]any
	IsThirdParty         *bool
	CreatedAt            *time.Time
}

// Record converts the params to an insertable record.
func (c CreateApplication) Record() Record {
	r := Record{
		"id":     c.ID,
		"name":   c.Name,
		"secret": c.Secret,
		"type":   string(c.Type),
	}
	if c.Description != nil {
		r["description"] = *c.Description
	}
	if c.OidcClientMetadata != nil {
		r["oidcClientMetadata"] = c.OidcClientMetadata
	}
	if c.CustomClientMetadata != nil {
		r["customClientMetadata"] = c.CustomClientMetadata
	}
	if c.IsThirdParty != nil {
		r["isThirdParty"] = *c.IsThirdParty
	}
	if c.CreatedAt != nil {
		r["createdAt"] = *c.CreatedAt
	}
	return r
}

// UpdateApplication holds the fields a patch may change. Nil means unchanged.
type UpdateApplication struct {
	Name                 *string        `json:"name"`
	Description          *string        `json:"description"`
	OidcClientMetadata   map[string]any `json:"oidcClientMetadata"`
	CustomClientMetadata map[string]any `json:"customClientMetadata"`
	IsThirdParty         *bool          `json:"isThirdParty"`
}

// Record converts the patch to a partial record.
func (u UpdateApplication) Record() Record {
	r := Record{}
	if u.Name != nil {
		r["name"] = *u.Name
	}
	if u.Description != nil {
		r["description"] = *u.Description
	}
	if u.OidcClientMetadata != nil {
		r["oidcClientMetadata"] = u.OidcClientMetadata
	}
	if u.CustomClientMetadata != nil {
		r["customClientMetadata"] = u.CustomClientMetadata
	}
	if u.IsThirdParty != nil {
		r["isThirdParty"] = *u.IsThirdParty
	}
	return r
}

// ApplicationsRole grants a machine-to-machine role to an application.
type ApplicationsRole struct {
	ID            string `db:"id" json:"id"`
	ApplicationID string `db:"application_id" json:"applicationId"`
	RoleID        string `db:"role_id" json:"roleId"`
}

var ApplicationsRoles = MustNew(Definition{
	Table:         "applications_roles",
	TableSingular: "applications_role",
	Fields: map[string]string{
		"id":            "id",
		"applicationId": "application_id",
		"roleId":        "role_id",
	},
	FieldKeys: []string{"id", "applicationId", "roleId"},
	Required:  []string{"id", "applicationId", "roleId"},
})

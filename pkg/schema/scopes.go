package schema

import "time"

// Scope is a permission defined on an API resource.
type Scope struct {
	ID          string    `db:"id" json:"id"`
	ResourceID  string    `db:"resource_id" json:"resourceId"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

var Scopes = MustNew(Definition{
	Table:         "scopes",
	TableSingular: "scope",
	Fields: map[string]string{
		"id":          "id",
		"resourceId":  "resource_id",
		"name":        "name",
		"description": "description",
		"createdAt":   "created_at",
	},
	FieldKeys: []string{"id", "resourceId", "name", "description", "createdAt"},
	Required:  []string{"id", "resourceId", "name"},
})

type CreateScope struct {
	ID          string
	ResourceID  string
	Name        string
	Description *string
}

func (c CreateScope) Record() Record {
	r := Record{
		"id":         c.ID,
		"resourceId": c.ResourceID,
		"name":       c.Name,
	}
	if c.Description != nil {
		r["description"] = *c.Description
	}
	return r
}

// RolesScope grants a scope to a role.
type RolesScope struct {
	ID      string `db:"id" json:"id"`
	RoleID  string `db:"role_id" json:"roleId"`
	ScopeID string `db:"scope_id" json:"scopeId"`
}

var RolesScopes = MustNew(Definition{
	Table:         "roles_scopes",
	TableSingular: "roles_scope",
	Fields: map[string]string{
		"id":      "id",
		"roleId":  "role_id",
		"scopeId": "scope_id",
	},
	FieldKeys: []string{"id", "roleId", "scopeId"},
	Required:  []string{"id", "roleId", "scopeId"},
})

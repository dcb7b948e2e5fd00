package schema

import "time"

// RoleType separates roles granted to users from roles granted to
// machine-to-machine applications.
type RoleType string

const (
	RoleTypeUser             RoleType = "User"
	RoleTypeMachineToMachine RoleType = "MachineToMachine"
)

// Valid reports whether t is a known role type.
func (t RoleType) Valid() bool {
	return t == RoleTypeUser || t == RoleTypeMachineToMachine
}

// Role is a row of the roles table.
type Role struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Type        RoleType  `db:"type" json:"type"`
	IsDefault   bool      `db:"is_default" json:"isDefault"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

var Roles = MustNew(Definition{
	Table:         "roles",
	TableSingular: "role",
	Fields: map[string]string{
		"id":          "id",
		"name":        "name",
		"description": "description",
		"type":        "type",
		"isDefault":   "is_default",
		"createdAt":   "created_at",
	},
	FieldKeys: []string{"id", "name", "description", "type", "isDefault", "createdAt"},
	Required:  []string{"id", "name", "description"},
})

type CreateRole struct {
	ID          string
	Name        string
	Description string
	Type        RoleType
	IsDefault   *bool
}

func (c CreateRole) Record() Record {
	r := Record{
		"id":          c.ID,
		"name":        c.Name,
		"description": c.Description,
	}
	if c.Type != "" {
		r["type"] = string(c.Type)
	}
	if c.IsDefault != nil {
		r["isDefault"] = *c.IsDefault
	}
	return r
}

type UpdateRole struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsDefault   *bool   `json:"isDefault"`
}

func (u UpdateRole) Record() Record {
	r := Record{}
	if u.Name != nil {
		r["name"] = *u.Name
	}
	if u.Description != nil {
		r["description"] = *u.Description
	}
	if u.IsDefault != nil {
		r["isDefault"] = *u.IsDefault
	}
	return r
}

package schema

import "time"

// User is a row of the users table.
type User struct {
	ID           string         `db:"id" json:"id"`
	Username     *string        `db:"username" json:"username"`
	PrimaryEmail *string        `db:"primary_email" json:"primaryEmail"`
	Name         *string        `db:"name" json:"name"`
	Avatar       *string        `db:"avatar" json:"avatar"`
	CustomData   map[string]any `db:"custom_data" json:"customData"`
	CreatedAt    time.Time      `db:"created_at" json:"createdAt"`
}

var Users = MustNew(Definition{
	Table:         "users",
	TableSingular: "user",
	Fields: map[string]string{
		"id":           "id",
		"username":     "username",
		"primaryEmail": "primary_email",
		"name":         "name",
		"avatar":       "avatar",
		"customData":   "custom_data",
		"createdAt":    "created_at",
	},
	FieldKeys: []string{"id", "username", "primaryEmail", "name", "avatar", "customData", "createdAt"},
	Required:  []string{"id"},
	JSON:      []string{"customData"},
})

type CreateUser struct {
	ID           string
	Username     *string
	PrimaryEmail *string
	Name         *string
	Avatar       *string
	CustomData   map[string]any
}

func (c CreateUser) Record() Record {
	r := Record{"id": c.ID}
	if c.Username != nil {
		r["username"] = *c.Username
	}
	if c.PrimaryEmail != nil {
		r["primaryEmail"] = *c.PrimaryEmail
	}
	if c.Name != nil {
		r["name"] = *c.Name
	}
	if c.Avatar != nil {
		r["avatar"] = *c.Avatar
	}
	if c.CustomData != nil {
		r["customData"] = c.CustomData
	}
	return r
}

// UsersRole links a user to a role.
type UsersRole struct {
	ID     string `db:"id" json:"id"`
	UserID string `db:"user_id" json:"userId"`
	RoleID string `db:"role_id" json:"roleId"`
}

var UsersRoles = MustNew(Definition{
	Table:         "users_roles",
	TableSingular: "users_role",
	Fields: map[string]string{
		"id":     "id",
		"userId": "user_id",
		"roleId": "role_id",
	},
	FieldKeys: []string{"id", "userId", "roleId"},
	Required:  []string{"id", "userId", "roleId"},
})

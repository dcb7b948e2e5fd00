package schema

import "time"

type ConnectorType string

const (
	ConnectorTypeEmail  ConnectorType = "Email"
	ConnectorTypeSms    ConnectorType = "Sms"
	ConnectorTypeSocial ConnectorType = "Social"
)

func (t ConnectorType) Valid() bool {
	switch t {
	case ConnectorTypeEmail, ConnectorTypeSms, ConnectorTypeSocial:
		return true
	}
	return false
}

// Connector is a row of the connectors table. Config holds the
// connector-specific settings as a JSON object.
type Connector struct {
	ID        string         `db:"id" json:"id"`
	Type      ConnectorType  `db:"type" json:"type"`
	Enabled   bool           `db:"enabled" json:"enabled"`
	Config    map[string]any `db:"config" json:"config"`
	CreatedAt time.Time      `db:"created_at" json:"createdAt"`
}

var Connectors = MustNew(Definition{
	Table:         "connectors",
	TableSingular: "connector",
	Fields: map[string]string{
		"id":        "id",
		"type":      "type",
		"enabled":   "enabled",
		"config":    "config",
		"createdAt": "created_at",
	},
	FieldKeys: []string{"id", "type", "enabled", "config", "createdAt"},
	Required:  []string{"id", "type"},
	JSON:      []string{"config"},
})

type CreateConnector struct {
	ID      string
	Type    ConnectorType
	Enabled *bool
	Config  map[string]any
}

func (c CreateConnector) Record() Record {
	r := Record{
		"id":   c.ID,
		"type": string(c.Type),
	}
	if c.Enabled != nil {
		r["enabled"] = *c.Enabled
	}
	if c.Config != nil {
		r["config"] = c.Config
	}
	return r
}

type UpdateConnector struct {
	Enabled *bool          `json:"enabled"`
	Config  map[string]any `json:"config"`
}

func (u UpdateConnector) Record() Record {
	r := Record{}
	if u.Enabled != nil {
		r["enabled"] = *u.Enabled
	}
	if u.Config != nil {
		r["config"] = u.Config
	}
	return r
}

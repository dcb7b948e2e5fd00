package config

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// StoreConfig selects the storage backend. The memory store keeps nothing
// across restarts and is meant for demos and local UI work.
type StoreConfig struct {
	Kind string `env:"CONSOLE_STORE" env-default:"postgres"`
}

func (s StoreConfig) Validate() ValidationErrors {
	return CollectErrors(RequireOneOf("CONSOLE_STORE", s.Kind, []string{StorePostgres, StoreMemory}))
}

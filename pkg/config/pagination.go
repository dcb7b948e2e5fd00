package config

// PaginationConfig bounds the page_size query parameter of list endpoints.
type PaginationConfig struct {
	DefaultPageSize int `env:"PAGE_SIZE_DEFAULT" env-default:"20"`
	MaxPageSize     int `env:"PAGE_SIZE_MAX" env-default:"100"`
}

func (p PaginationConfig) Validate() ValidationErrors {
	return CollectErrors(
		RequirePositive("PAGE_SIZE_MAX", p.MaxPageSize),
		RequireInRange("PAGE_SIZE_DEFAULT", p.DefaultPageSize, 1, p.MaxPageSize),
	)
}

package store

// Config holds table naming for the persistent backends.
type Config struct {
	// PostTable holds content item attributes.
	// Default: "lattice_postmeta"
	PostTable string

	// TermTable holds taxonomy term attributes.
	// Default: "lattice_termmeta"
	TermTable string

	// UserTable holds account attributes.
	// Default: "lattice_usermeta"
	UserTable string

	// PageSize limits items per DynamoDB Query page when scanning keys.
	// Default: 0 (service default, 1 MB pages)
	// Max: 1000
	PageSize int32
}

// DefaultConfig returns the default table names.
func DefaultConfig() Config {
	return Config{
		PostTable: "lattice_postmeta",
		TermTable: "lattice_termmeta",
		UserTable: "lattice_usermeta",
	}
}

// Table returns the table holding attributes of kind.
func (c Config) Table(kind ObjectKind) string {
	c.validate()
	switch kind {
	case KindPost:
		return c.PostTable
	case KindTerm:
		return c.TermTable
	case KindUser:
		return c.UserTable
	default:
		return ""
	}
}

// validate ensures config values are within acceptable bounds.
func (c *Config) validate() {
	if c.PostTable == "" {
		c.PostTable = "lattice_postmeta"
	}
	if c.TermTable == "" {
		c.TermTable = "lattice_termmeta"
	}
	if c.UserTable == "" {
		c.UserTable = "lattice_usermeta"
	}
	if c.PageSize < 0 {
		c.PageSize = 0
	}
	if c.PageSize > 1000 {
		c.PageSize = 1000
	}
}

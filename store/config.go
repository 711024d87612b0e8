package store

// Config holds configuration for the DynamoDB Store.
type Config struct {
	// TableName is the name of the items table.
	// Its hash key is "description" and its range key is "id".
	// Default: "todo_items"
	TableName string

	// IDIndexName is the global secondary index keyed on "id",
	// used for point lookups when the partition key is unknown.
	// Default: "id-index"
	IDIndexName string
}

const (
	defaultTableName   = "todo_items"
	defaultIDIndexName = "id-index"
)

// DefaultConfig returns the default table layout.
func DefaultConfig() Config {
	return Config{
		TableName:   defaultTableName,
		IDIndexName: defaultIDIndexName,
	}
}

// validate fills in defaults for empty values.
func (c *Config) validate() {
	if c.TableName == "" {
		c.TableName = defaultTableName
	}
	if c.IDIndexName == "" {
		c.IDIndexName = defaultIDIndexName
	}
}

package config

const (
	SearchBackendIndex    = "index"
	SearchBackendPGVector = "pgvector"
)

type SearchConfig struct {
	Backend         string
	Endpoint        string
	Index           string
	APIKey          string
	APIVersion      string
	Top             int
	HighlightFields string
	Select          string
	// MalformedHitPolicy is fail_fast or skip_and_collect.
	MalformedHitPolicy string
}

package match

// SearchHit is one matched chunk returned by a search backend. Several chunks
// of the same job posting can appear in one response.
type SearchHit struct {
	ChunkID             string              `json:"chunk_id"`
	JobID               string              `json:"job_id,omitempty"`
	Score               float64             `json:"score"`
	Title               string              `json:"title"`
	Company             string              `json:"company"`
	Location            string              `json:"location"`
	Type                string              `json:"type"`
	ReqSkills           string              `json:"req_skills,omitempty"`
	KeyResponsibilities string              `json:"key_responsibilities,omitempty"`
	Highlights          map[string][]string `json:"highlights,omitempty"`
}

// JobMatch is the aggregated view of every hit that belongs to one job.
type JobMatch struct {
	JobID               string   `json:"jobId"`
	Title               string   `json:"title"`
	Company             string   `json:"company"`
	Location            string   `json:"location"`
	Type                string   `json:"type"`
	ReqSkills           string   `json:"reqSkills"`
	KeyResponsibilities string   `json:"keyResponsibilities"`
	MatchPercent        int      `json:"matchPercent"`
	HighlightedSkills   []string `json:"highlightedSkills"`
	MatchedChunkCount   int      `json:"matchedChunkCount"`

	// Score is the raw relevance score of the representative chunk.
	Score float64 `json:"-"`
}

// Policy decides what Aggregate does with a hit whose job id cannot be resolved.
type Policy int

const (
	// FailFast aborts on the first malformed hit.
	FailFast Policy = iota
	// SkipAndCollect leaves malformed hits out and reports them in the Result.
	SkipAndCollect
)

func (p Policy) String() string {
	switch p {
	case FailFast:
		return "fail_fast"
	case SkipAndCollect:
		return "skip_and_collect"
	default:
		return "unknown"
	}
}

// ParsePolicy maps a config value to a Policy. Unknown values fall back to SkipAndCollect.
func ParsePolicy(s string) Policy {
	switch s {
	case "fail_fast", "failfast", "fail-fast":
		return FailFast
	default:
		return SkipAndCollect
	}
}

// Result is the output of one aggregation run.
type Result struct {
	Matches []JobMatch
	// Skipped counts malformed hits left out under SkipAndCollect.
	Skipped int
	Errors  []error
}

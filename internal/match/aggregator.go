package match

import (
	"math"
	"sort"
	"strings"
)

// Aggregator turns raw chunk-level search hits into one ranked JobMatch per job.
// It holds no mutable state and is safe for concurrent use.
type Aggregator struct {
	policy Policy
}

func NewAggregator(policy Policy) *Aggregator {
	return &Aggregator{policy: policy}
}

func (a *Aggregator) Policy() Policy {
	return a.policy
}

type group struct {
	jobID          string
	representative SearchHit
	hits           []SearchHit
}

// Aggregate groups hits by job, normalizes the best score of each job against
// the highest score in the whole response and returns the jobs ordered by
// match percent. Empty input yields an empty result.
func (a *Aggregator) Aggregate(hits []SearchHit) (*Result, error) {
	result := &Result{Matches: []JobMatch{}}
	if len(hits) == 0 {
		return result, nil
	}

	maxScore := GlobalMaxScore(hits)

	var order []string
	groups := make(map[string]*group)
	for i, hit := range hits {
		jobID, err := ResolveJobID(hit)
		if err != nil {
			if malformed, ok := err.(*MalformedHitError); ok {
				malformed.Index = i
			}
			if a.policy == FailFast {
				return nil, err
			}
			result.Skipped++
			result.Errors = append(result.Errors, err)
			continue
		}

		g, ok := groups[jobID]
		if !ok {
			g = &group{jobID: jobID, representative: hit}
			groups[jobID] = g
			order = append(order, jobID)
		} else if sanitizeScore(hit.Score) > sanitizeScore(g.representative.Score) {
			g.representative = hit
		}
		g.hits = append(g.hits, hit)
	}

	for _, jobID := range order {
		g := groups[jobID]
		rep := g.representative
		result.Matches = append(result.Matches, JobMatch{
			JobID:               g.jobID,
			Title:               rep.Title,
			Company:             rep.Company,
			Location:            rep.Location,
			Type:                rep.Type,
			ReqSkills:           rep.ReqSkills,
			KeyResponsibilities: rep.KeyResponsibilities,
			MatchPercent:        MatchPercent(rep.Score, maxScore),
			HighlightedSkills:   MergeHighlights(g.hits),
			MatchedChunkCount:   len(g.hits),
			Score:               sanitizeScore(rep.Score),
		})
	}

	sort.SliceStable(result.Matches, func(i, j int) bool {
		return result.Matches[i].MatchPercent > result.Matches[j].MatchPercent
	})

	return result, nil
}

// Aggregate runs a FailFast aggregation and returns only the matches.
func Aggregate(hits []SearchHit) ([]JobMatch, error) {
	result, err := NewAggregator(FailFast).Aggregate(hits)
	if err != nil {
		return nil, err
	}
	return result.Matches, nil
}

// ResolveJobID returns the explicit job id of a hit or, when absent, the part
// of the chunk id before the first underscore. Chunk ids written by the job
// indexer follow the "<jobId>_chunk<n>" layout and the search index schema
// keeps the same convention.
func ResolveJobID(hit SearchHit) (string, error) {
	if jobID := strings.TrimSpace(hit.JobID); jobID != "" {
		return jobID, nil
	}

	chunkID := strings.TrimSpace(hit.ChunkID)
	if chunkID == "" {
		return "", &MalformedHitError{ChunkID: hit.ChunkID, Reason: "empty chunk id and no job id"}
	}

	prefix, _, _ := strings.Cut(chunkID, "_")
	if prefix == "" {
		return "", &MalformedHitError{ChunkID: hit.ChunkID, Reason: "chunk id has no job id prefix"}
	}
	return prefix, nil
}

// GlobalMaxScore is the highest score across all hits, or 1.0 for no hits.
func GlobalMaxScore(hits []SearchHit) float64 {
	if len(hits) == 0 {
		return 1.0
	}
	maxScore := 0.0
	for _, hit := range hits {
		if s := sanitizeScore(hit.Score); s > maxScore {
			maxScore = s
		}
	}
	return maxScore
}

// MatchPercent is floor(100 * score / maxScore) clamped to [0, 100].
// A zero maxScore yields 0.
func MatchPercent(score, maxScore float64) int {
	score = sanitizeScore(score)
	maxScore = sanitizeScore(maxScore)
	if maxScore == 0 {
		return 0
	}

	percent := math.Floor(100 * score / maxScore)
	if math.IsNaN(percent) || percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return int(percent)
}

// MergeHighlights collects every snippet of every highlight field of the hits
// into one list without duplicates. Hits are walked in order and fields in
// sorted name order so the output is deterministic for a given input.
func MergeHighlights(hits []SearchHit) []string {
	seen := make(map[string]struct{})
	merged := []string{}
	for _, hit := range hits {
		if len(hit.Highlights) == 0 {
			continue
		}
		fields := make([]string, 0, len(hit.Highlights))
		for field := range hit.Highlights {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		for _, field := range fields {
			for _, snippet := range hit.Highlights[field] {
				if _, ok := seen[snippet]; ok {
					continue
				}
				seen[snippet] = struct{}{}
				merged = append(merged, snippet)
			}
		}
	}
	return merged
}

// sanitizeScore maps NaN, infinite and negative scores to 0.
func sanitizeScore(score float64) float64 {
	if math.IsNaN(score) || math.IsInf(score, 0) || score < 0 {
		return 0
	}
	return score
}

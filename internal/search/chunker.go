package search

import (
	"fmt"
	"strings"

	"github.com/fadilmartias/resume-matcher/internal/model"
)

const DefaultChunkChars = 1500

// Chunk is one embeddable slice of an assignment.
type Chunk struct {
	ID      string
	JobID   string
	Index   int
	Field   string
	Content string
}

// ChunkID builds "<jobId>_chunk<n>". The match aggregator recovers the job id
// from everything before the first underscore, so job ids must not contain one.
func ChunkID(jobID string, n int) string {
	return fmt.Sprintf("%s_chunk%d", jobID, n)
}

// ValidJobID reports whether id can be used as the prefix of chunk ids.
func ValidJobID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("job id is empty")
	}
	if strings.Contains(id, "_") {
		return fmt.Errorf("job id %q must not contain an underscore", id)
	}
	if strings.TrimSpace(id) != id {
		return fmt.Errorf("job id %q has surrounding whitespace", id)
	}
	return nil
}

// ChunkAssignment splits the text fields of a into chunks of at most maxChars
// runes, breaking on paragraph and then line boundaries where possible. Each
// chunk starts with the job title so it embeds with its context.
func ChunkAssignment(a model.Assignment, maxChars int) []Chunk {
	if maxChars <= 0 {
		maxChars = DefaultChunkChars
	}
	fields := []struct {
		name string
		text string
	}{
		{"job_desc", a.JobDesc},
		{"req_skills", a.ReqSkills},
		{"key_responsibilities", a.KeyResponsibilities},
	}

	var chunks []Chunk
	for _, f := range fields {
		for _, piece := range splitText(f.text, maxChars) {
			n := len(chunks)
			chunks = append(chunks, Chunk{
				ID:      ChunkID(a.ID, n),
				JobID:   a.ID,
				Index:   n,
				Field:   f.name,
				Content: a.Title + "\n" + piece,
			})
		}
	}
	return chunks
}

func splitText(text string, maxChars int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var out []string
	var cur strings.Builder
	curLen := 0
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			out = append(out, s)
		}
		cur.Reset()
		curLen = 0
	}

	for _, line := range strings.Split(text, "\n") {
		runes := []rune(line)
		for len(runes) > maxChars {
			flush()
			if s := strings.TrimSpace(string(runes[:maxChars])); s != "" {
				out = append(out, s)
			}
			runes = runes[maxChars:]
		}
		if curLen+len(runes)+1 > maxChars {
			flush()
		}
		cur.WriteString(string(runes))
		cur.WriteByte('\n')
		curLen += len(runes) + 1
	}
	flush()
	return out
}

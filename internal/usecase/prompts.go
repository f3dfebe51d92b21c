package usecase

import (
	_ "embed"
	"strings"
)

const (
	querySystemPrompt   = "You are an AI assistant that extracts job-related search queries from resumes."
	enhanceSystemPrompt = "You are an AI resume optimization assistant."
	parseSystemPrompt   = "You are an AI assistant that converts resumes into structured JSON."
)

//go:embed prompts/query.md
var queryPromptTemplate string

//go:embed prompts/enhance.md
var enhancePromptTemplate string

//go:embed prompts/parse.md
var parsePromptTemplate string

func renderPrompt(template string, values map[string]string) string {
	out := template
	for key, value := range values {
		out = strings.ReplaceAll(out, "{{"+key+"}}", value)
	}
	return out
}

package resume

type Experience struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Start       string   `json:"start,omitempty"`
	End         string   `json:"end,omitempty"`
	Highlights  []string `json:"highlights,omitempty"`
	Description string   `json:"description,omitempty"`
}

type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Year        string `json:"year,omitempty"`
}

// StructuredResume is the shape the LLM is asked to produce for a resume.
type StructuredResume struct {
	Name           string       `json:"name"`
	Email          string       `json:"email,omitempty"`
	Phone          string       `json:"phone,omitempty"`
	Summary        string       `json:"summary,omitempty"`
	Skills         []string     `json:"skills"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	Certifications []string     `json:"certifications,omitempty"`

	// Partial is set when the model output could not be parsed and the
	// lenient policy kept the raw text in Summary.
	Partial bool `json:"partial,omitempty"`
}

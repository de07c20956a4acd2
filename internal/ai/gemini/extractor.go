package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"masar-backend/internal/domain"
)

// jsonGenerator is the slice of Generator the structured services need.
// Tests inject a fake; production wires *Generator.
type jsonGenerator interface {
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
	GenerateJSONWithFile(ctx context.Context, prompt string, data []byte, mimeType string, schema *genai.Schema) (string, error)
}

var cvExtractionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"full_name": {Type: genai.TypeString, Description: "The person's full name."},
		"title": {
			Type:        genai.TypeString,
			Description: "The person's most recent or primary job title.",
		},
		"summary": {
			Type:        genai.TypeString,
			Description: "A brief professional summary of the person.",
		},
		"experience_years": {
			Type:        genai.TypeInteger,
			Description: "Total years of professional experience as a number.",
		},
		"skills": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "List of the key technical and soft skills.",
		},
	},
	Required: []string{"full_name", "title", "skills"},
}

// Extractor parses CVs into structured profile data.
type Extractor struct {
	generator jsonGenerator
}

func NewExtractor(generator jsonGenerator) *Extractor {
	return &Extractor{generator: generator}
}

func (e *Extractor) ParseText(ctx context.Context, cvText string) (*domain.CVExtraction, error) {
	prompt := fmt.Sprintf(
		"Analyze the following CV text and extract the person's professional information. "+
			"All extracted text values must be in Arabic.\n\nCV text:\n%q", cvText)

	raw, err := e.generator.GenerateJSON(ctx, prompt, cvExtractionSchema)
	if err != nil {
		return nil, err
	}
	return decodeExtraction(raw)
}

func (e *Extractor) ParseDocument(ctx context.Context, data []byte, mimeType string) (*domain.CVExtraction, error) {
	prompt := "Analyze the attached CV document and extract the person's professional information. " +
		"All extracted text values must be in Arabic."

	raw, err := e.generator.GenerateJSONWithFile(ctx, prompt, data, mimeType, cvExtractionSchema)
	if err != nil {
		return nil, err
	}
	return decodeExtraction(raw)
}

// decodeExtraction parses and validates the model output. The extraction is
// accepted whole or rejected; a partial result never reaches the profile.
func decodeExtraction(raw string) (*domain.CVExtraction, error) {
	var extraction domain.CVExtraction
	if err := json.Unmarshal([]byte(stripJSONFences(raw)), &extraction); err != nil {
		return nil, fmt.Errorf("decode cv extraction: %w", err)
	}
	if extraction.FullName == "" || extraction.Title == "" || len(extraction.Skills) == 0 {
		return nil, fmt.Errorf("cv extraction missing required fields")
	}
	if extraction.ExperienceYears != nil && *extraction.ExperienceYears < 0 {
		extraction.ExperienceYears = nil
	}
	return &extraction, nil
}

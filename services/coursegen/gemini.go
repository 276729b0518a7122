package coursegensvc

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/shulehq/shule/core"
)

const genCount = 3

type geminiGenerator struct {
	client *genai.Client
	model  string
	logger core.Logger
}

var _ core.CourseGenerator = (*geminiGenerator)(nil)

// NewGeminiGenerator asks a Gemini model for realistic course records
// constrained to a JSON schema. This simulates catalog crawling with
// generated data; nothing is fetched from real academic sites.
func NewGeminiGenerator(conf *core.Config, logger core.Logger) (core.CourseGenerator, error) {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  conf.Coursegen.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &geminiGenerator{client: client, model: conf.Coursegen.Model, logger: logger}, nil
}

// GenerateCourses recovers from every upstream failure (request error,
// malformed response) by returning an empty list; the admin flow reports
// "0 imported" rather than failing.
func (g *geminiGenerator) GenerateCourses(ctx context.Context, topic, teacherID, teacherName string) ([]core.CandidateCourse, error) {
	prompt := fmt.Sprintf(
		"Generate %d realistic university courses related to %q. They should be taught by %s.",
		genCount, topic, teacherName,
	)
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":        {Type: genai.TypeString, Description: "Course name"},
					"credits":     {Type: genai.TypeNumber, Description: "Credits (1-5)"},
					"description": {Type: genai.TypeString, Description: "Short description"},
				},
				Required: []string{"name", "credits", "description"},
			},
		},
	})
	if err != nil {
		g.logger.Error(fmt.Sprintf("coursegen: generateContent(%q): %v", topic, err), err)
		return []core.CandidateCourse{}, nil
	}

	var items []struct {
		Name        string  `json:"name"`
		Credits     float64 `json:"credits"`
		Description string  `json:"description"`
	}
	if err := json.Unmarshal([]byte(resp.Text()), &items); err != nil {
		g.logger.Error(fmt.Sprintf("coursegen: malformed response for %q: %v", topic, err), err)
		return []core.CandidateCourse{}, nil
	}

	candidates := make([]core.CandidateCourse, 0, len(items))
	for _, item := range items {
		candidates = append(candidates, core.CandidateCourse{
			Name:        item.Name,
			Credits:     int(item.Credits),
			Description: item.Description,
			TeacherID:   teacherID,
			TeacherName: teacherName,
		})
	}
	return candidates, nil
}

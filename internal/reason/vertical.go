package reason

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/scop-vc/enrich-cli/internal/model"
	"github.com/scop-vc/enrich-cli/pkg/anthropic"
)

// Vertical is the classified industry category used to pick pitch
// content.
type Vertical string

const (
	VerticalFinancialServices Vertical = "Financial Services"
	VerticalConstruction      Vertical = "Construction"
	VerticalProptech          Vertical = "Proptech"
	VerticalAIInfrastructure  Vertical = "AI Infrastructure"
	VerticalHealthTech        Vertical = "HealthTech"
	VerticalVerticalSaaS      Vertical = "Vertical SaaS"
	VerticalOther             Vertical = "Other"
)

// Verticals lists every valid category in prompt order.
var Verticals = []Vertical{
	VerticalFinancialServices,
	VerticalConstruction,
	VerticalProptech,
	VerticalAIInfrastructure,
	VerticalHealthTech,
	VerticalVerticalSaaS,
	VerticalOther,
}

const classifySystemPrompt = `You classify companies into a fixed set of industry verticals for a venture capital fund. Respond with only the category name, nothing else.`

// Adapter is the reasoning surface the orchestrator depends on.
type Adapter interface {
	ClassifyIndustry(ctx context.Context, company *model.Company) Vertical
	ComposeEmail(company *model.Company, founder *model.Founder, vertical Vertical, owner model.Owner) string
}

// Reasoner implements Adapter with an Anthropic classifier and a
// playbook-driven composer.
type Reasoner struct {
	client   anthropic.Client
	model    string
	playbook *Playbook
}

// NewReasoner creates a Reasoner. A nil playbook uses the built-in one.
func NewReasoner(client anthropic.Client, model string, playbook *Playbook) *Reasoner {
	if playbook == nil {
		playbook = DefaultPlaybook()
	}
	return &Reasoner{client: client, model: model, playbook: playbook}
}

// ClassifyIndustry classifies the company into one of the fixed
// verticals. Any failure, including an answer outside the closed set,
// degrades to Other.
func (r *Reasoner) ClassifyIndustry(ctx context.Context, company *model.Company) Vertical {
	if company == nil {
		return VerticalOther
	}

	description := company.Description
	if description == "" {
		description = company.ShortDescription
	}

	var b strings.Builder
	b.WriteString("Classify this company's primary industry vertical.\n\n")
	fmt.Fprintf(&b, "Company Name: %s\n", company.Name)
	fmt.Fprintf(&b, "Description: %s\n", description)
	fmt.Fprintf(&b, "Current Industry: %s\n\n", company.Industry)
	b.WriteString("Choose the most appropriate category from these options:\n")
	for _, v := range Verticals {
		fmt.Fprintf(&b, "- %s\n", v)
	}

	temp := 0.0
	resp, err := r.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       r.model,
		MaxTokens:   50,
		System:      classifySystemPrompt,
		Messages:    []anthropic.Message{{Role: "user", Content: b.String()}},
		Temperature: &temp,
	})
	if err != nil {
		zap.L().Warn("reason: classify failed", zap.String("company", company.Name), zap.Error(err))
		return VerticalOther
	}

	answer := strings.TrimSpace(resp.Text())
	for _, v := range Verticals {
		if strings.EqualFold(answer, string(v)) {
			return v
		}
	}

	zap.L().Warn("reason: classification outside closed set",
		zap.String("company", company.Name),
		zap.String("answer", answer),
	)
	return VerticalOther
}

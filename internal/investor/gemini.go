package investor

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"google.golang.org/genai"
)

// GeminiConfig configures the Gemini-backed adapter.
type GeminiConfig struct {
	APIKey string
	Model  string

	// BaseURL overrides the Gemini API base URL. Useful for proxies/testing.
	BaseURL string
}

// geminiAdapter implements Adapter on the Gemini API with Google Search
// grounding, so classification and resolution can verify firms against
// the live web.
type geminiAdapter struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini-backed Adapter.
func NewGemini(ctx context.Context, cfg GeminiConfig) (Adapter, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, eris.New("investor: gemini api key is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, eris.New("investor: gemini model is required")
	}

	cc := &genai.ClientConfig{
		APIKey:  strings.TrimSpace(cfg.APIKey),
		Backend: genai.BackendGeminiAPI,
	}
	if strings.TrimSpace(cfg.BaseURL) != "" {
		cc.HTTPOptions.BaseURL = strings.TrimSpace(cfg.BaseURL)
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, eris.Wrap(err, "investor: create gemini client")
	}
	return &geminiAdapter{client: client, model: strings.TrimSpace(cfg.Model)}, nil
}

func (a *geminiAdapter) generate(ctx context.Context, prompt string, thinkingBudget int32) (*genai.GenerateContentResponse, error) {
	return a.client.Models.GenerateContent(
		ctx,
		a.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			ThinkingConfig: &genai.ThinkingConfig{
				ThinkingBudget: genai.Ptr(thinkingBudget),
			},
		},
	)
}

func (a *geminiAdapter) ClassifyInvestors(ctx context.Context, names []string) (*Classification, error) {
	if len(names) == 0 {
		return &Classification{}, nil
	}

	var list strings.Builder
	for _, name := range names {
		fmt.Fprintf(&list, "- %s\n", name)
	}

	prompt := fmt.Sprintf(`Classify each investor in this list and filter to ONLY VC funds and accelerators.

INVESTOR LIST:
%s
CLASSIFICATION RULES:
1. VC FUNDS (INCLUDE): Venture capital firms, private equity firms focused on startups, seed funds, growth equity firms
2. ACCELERATORS (INCLUDE): Startup accelerators, incubators, venture studios (e.g., Y Combinator, Techstars, 500 Startups)
3. EXCLUDE - Government/Institutional: Government agencies, ministries, public institutions, grants programs
4. EXCLUDE - Individual Angels: Names of individual people
5. EXCLUDE - Corporate/Strategic: Corporate venture arms should be INCLUDED, but pure corporate strategic investments without a dedicated fund should be excluded

If you're unsure about any investor, use web search to verify what type of entity they are.

Return your response as valid JSON:
{
    "vc_funds": [{"name": "Fund Name", "type": "vc_fund"}],
    "accelerators": [{"name": "Accelerator Name", "type": "accelerator"}],
    "excluded": [{"name": "Excluded Name", "type": "government|angel|institutional|unknown", "reason": "Brief reason"}]
}

Return ONLY the JSON object, no other text.`, list.String())

	resp, err := a.generate(ctx, prompt, 2048)
	if err != nil {
		return nil, eris.Wrap(err, "investor: classify")
	}

	var parsed struct {
		VCFunds []struct {
			Name string `json:"name"`
		} `json:"vc_funds"`
		Accelerators []struct {
			Name string `json:"name"`
		} `json:"accelerators"`
		Excluded []struct {
			Name   string `json:"name"`
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"excluded"`
	}
	if err := json.Unmarshal([]byte(extractJSON(resp.Text())), &parsed); err != nil {
		return nil, eris.Wrap(err, "investor: parse classification")
	}

	out := &Classification{}
	for _, f := range parsed.VCFunds {
		out.Included = append(out.Included, f.Name)
	}
	for _, acc := range parsed.Accelerators {
		out.Included = append(out.Included, acc.Name)
	}
	for _, ex := range parsed.Excluded {
		out.Excluded = append(out.Excluded, ExcludedInvestor{Name: ex.Name, Type: ex.Type, Reason: ex.Reason})
	}
	return out, nil
}

func (a *geminiAdapter) RankInvestors(ctx context.Context, names []string, companyName, companyContext string, topN int) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}

	var header strings.Builder
	if companyName != "" {
		fmt.Fprintf(&header, "\nCOMPANY: %s", companyName)
	}
	if companyContext != "" {
		fmt.Fprintf(&header, "\nCONTEXT: %s", companyContext)
	}

	var list strings.Builder
	for _, name := range names {
		fmt.Fprintf(&list, "- %s\n", name)
	}

	prompt := fmt.Sprintf(`Rank these investors and select the TOP %d most institutional, reputable, or likely lead investors.
%s
INVESTORS TO RANK:
%s
RANKING CRITERIA (in order of importance):
1. LEAD INVESTOR LIKELIHOOD: Larger, more established funds that typically lead rounds
2. INSTITUTIONAL REPUTATION: Well-known, reputable VC firms with strong track records
3. ACTIVE & PROFESSIONAL: Funds known for being active, hands-on investors
4. RELEVANCE: If company context provided, prioritize investors with relevant sector expertise

Use web search to verify the reputation and status of these investors if needed.

IMPORTANT RULES:
- DEDUPLICATE: If multiple investors are the same organization or sub-programs of the same firm (e.g., "Dreamit Ventures" and "Dreamit Urbantech" are the same firm), only include ONE of them (prefer the parent/main entity)
- Larger, more established funds should rank above smaller/newer funds
- Angel groups and syndicates rank lower than institutional VCs
- Regional/local funds rank lower than national/global funds (unless highly relevant)

Return your response as valid JSON:
{
    "top_investors": [{"name": "Investor Name", "rank": 1, "reasoning": "Why this investor ranks highly"}]
}

Return ONLY the JSON object, no other text.`, topN, header.String(), list.String())

	resp, err := a.generate(ctx, prompt, 4096)
	if err != nil {
		return nil, eris.Wrap(err, "investor: rank")
	}

	var parsed struct {
		TopInvestors []struct {
			Name string `json:"name"`
		} `json:"top_investors"`
	}
	if err := json.Unmarshal([]byte(extractJSON(resp.Text())), &parsed); err != nil {
		return nil, eris.Wrap(err, "investor: parse ranking")
	}

	out := make([]string, 0, topN)
	for _, inv := range parsed.TopInvestors {
		if inv.Name == "" {
			continue
		}
		out = append(out, inv.Name)
		if len(out) == topN {
			break
		}
	}
	return out, nil
}

func (a *geminiAdapter) ResolveDomain(ctx context.Context, name string) (*DomainResolution, error) {
	prompt := fmt.Sprintf(`Find the official website domain for the venture capital or investment firm named "%s".

IMPORTANT REQUIREMENTS:
1. This is a VENTURE CAPITAL, PRIVATE EQUITY, or INVESTMENT firm - not a regular company
2. I need the PRIMARY website domain (e.g., "sequoiacap.com" not "sequoia.com")
3. Verify this is actually an investment firm, not a company with a similar name

Return your response as valid JSON with this exact structure:
{
    "official_name": "The official/full name of the investment firm",
    "domain": "example.com",
    "confidence": "high/medium/low",
    "reasoning": "Brief explanation of how you verified this"
}

CONFIDENCE LEVELS:
- "high": Found official website with clear VC/investment firm branding
- "medium": Found a likely match but some uncertainty
- "low": Could not verify this is a VC firm or domain is uncertain

If you cannot find a legitimate VC/investment firm with this name, return null official_name and domain with confidence "low".

Return ONLY the JSON object, no other text.`, name)

	resp, err := a.generate(ctx, prompt, 0)
	if err != nil {
		return nil, eris.Wrapf(err, "investor: resolve %s", name)
	}

	var parsed struct {
		OfficialName string `json:"official_name"`
		Domain       string `json:"domain"`
		Confidence   string `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(extractJSON(resp.Text())), &parsed); err != nil {
		return nil, eris.Wrapf(err, "investor: parse resolution for %s", name)
	}

	out := &DomainResolution{
		Name:       parsed.OfficialName,
		Domain:     parsed.Domain,
		Confidence: parsed.Confidence,
		Sources:    extractSources(resp),
	}
	if out.Name == "" {
		out.Name = name
	}
	if out.Confidence == "" {
		out.Confidence = "low"
	}
	return out, nil
}

var (
	codeFenceRE = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)\\n?```")
	jsonObjRE   = regexp.MustCompile(`(?s)\{.*\}`)
)

// extractJSON pulls a JSON object out of a response that may wrap it in
// a markdown code fence or preamble text.
func extractJSON(text string) string {
	if m := codeFenceRE.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := jsonObjRE.FindString(text); m != "" {
		return strings.TrimSpace(m)
	}
	return strings.TrimSpace(text)
}

// extractSources collects grounding URLs from the response, in order and
// deduplicated.
func extractSources(resp *genai.GenerateContentResponse) []string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil
	}
	c := resp.Candidates[0]
	if c.GroundingMetadata == nil {
		return nil
	}

	seen := make(map[string]struct{})
	var out []string
	for _, chunk := range c.GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		uri := strings.TrimSpace(chunk.Web.URI)
		if uri == "" {
			continue
		}
		if _, ok := seen[uri]; ok {
			continue
		}
		seen[uri] = struct{}{}
		out = append(out, uri)
	}
	return out
}

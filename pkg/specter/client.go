package specter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://app.tryspecter.com/api/v1"

// Client performs lookups against the Specter enrichment API.
//
// "Not found" and "enrichment pending" are expected outcomes and are
// reported as nil results (or Pending people), never as errors. Only
// transport and protocol failures return an error.
type Client interface {
	CompanyByDomain(ctx context.Context, domain string) (*Company, error)
	Person(ctx context.Context, personID string) (*Person, error)
	PersonByLinkedIn(ctx context.Context, linkedinURL string) (*Person, error)
	PersonEmail(ctx context.Context, personID, emailType string) (string, error)
}

// Company is the raw Specter company payload.
type Company struct {
	ID               string       `json:"id"`
	OrganizationName string       `json:"organization_name"`
	Website          string       `json:"website"`
	Description      string       `json:"description"`
	Tagline          string       `json:"tagline"`
	Tags             []string     `json:"tags"`
	Industries       []string     `json:"industries"`
	EmployeeCount    int          `json:"employee_count"`
	FoundedYear      int          `json:"founded_year"`
	HQ               HQ           `json:"hq"`
	Socials          Socials      `json:"socials"`
	FounderInfo      []FounderRef `json:"founder_info"`
	Investors        []string     `json:"investors"`
	InvestorCount    int          `json:"investor_count"`
}

// HQ is the headquarters block of a company payload.
type HQ struct {
	City   string `json:"city"`
	Region string `json:"region"`
}

// Socials holds social profile links of a company payload.
type Socials struct {
	LinkedIn SocialLink `json:"linkedin"`
}

// SocialLink is a single social profile entry.
type SocialLink struct {
	URL string `json:"url"`
}

// FounderRef is one entry of a company's founder_info array.
type FounderRef struct {
	SpecterPersonID string `json:"specter_person_id"`
	FullName        string `json:"full_name"`
	Title           string `json:"title"`
}

// Person is the raw Specter person payload. Pending is set when the API
// answered 202 Accepted (async enrichment still in progress).
type Person struct {
	PersonID             string `json:"person_id"`
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	FullName             string `json:"full_name"`
	CurrentPositionTitle string `json:"current_position_title"`
	LinkedInURL          string `json:"linkedin_url"`
	Location             string `json:"location"`

	Pending bool `json:"-"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTimeout overrides the default per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		c.http.Timeout = d
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a Specter API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) CompanyByDomain(ctx context.Context, domain string) (*Company, error) {
	body, status, err := c.do(ctx, http.MethodPost, "/companies", map[string]string{"domain": domain})
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound || len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, eris.Errorf("specter: unexpected status %d: %s", status, string(body))
	}

	// The API returns either a single object or a list of matches.
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var companies []Company
		if err := json.Unmarshal(trimmed, &companies); err != nil {
			return nil, eris.Wrap(err, "specter: unmarshal company list")
		}
		if len(companies) == 0 {
			return nil, nil
		}
		return &companies[0], nil
	}

	var company Company
	if err := json.Unmarshal(trimmed, &company); err != nil {
		return nil, eris.Wrap(err, "specter: unmarshal company")
	}
	return &company, nil
}

func (c *httpClient) Person(ctx context.Context, personID string) (*Person, error) {
	body, status, err := c.do(ctx, http.MethodGet, "/people/"+personID, nil)
	if err != nil {
		return nil, err
	}
	switch status {
	case http.StatusAccepted:
		return &Person{PersonID: personID, Pending: true}, nil
	case http.StatusNotFound:
		return nil, nil
	case http.StatusOK:
	default:
		return nil, eris.Errorf("specter: unexpected status %d: %s", status, string(body))
	}

	var person Person
	if err := json.Unmarshal(body, &person); err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("specter: unmarshal person %s", personID))
	}
	return &person, nil
}

func (c *httpClient) PersonByLinkedIn(ctx context.Context, linkedinURL string) (*Person, error) {
	if strings.TrimSpace(linkedinURL) == "" {
		return nil, nil
	}
	body, status, err := c.do(ctx, http.MethodPost, "/people", map[string]string{"linkedin_url": linkedinURL})
	if err != nil {
		return nil, err
	}
	switch status {
	case http.StatusAccepted:
		// Enrichment kicked off; a person_id may already be assigned.
		var pending Person
		if len(bytes.TrimSpace(body)) > 0 {
			_ = json.Unmarshal(body, &pending)
		}
		if pending.PersonID == "" {
			return nil, nil
		}
		pending.Pending = true
		return &pending, nil
	case http.StatusNotFound:
		return nil, nil
	case http.StatusOK:
	default:
		return nil, eris.Errorf("specter: unexpected status %d: %s", status, string(body))
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	var person Person
	if err := json.Unmarshal(body, &person); err != nil {
		return nil, eris.Wrap(err, "specter: unmarshal person by linkedin")
	}
	if person.PersonID == "" {
		return nil, nil
	}
	if person.LinkedInURL == "" {
		person.LinkedInURL = linkedinURL
	}
	return &person, nil
}

func (c *httpClient) PersonEmail(ctx context.Context, personID, emailType string) (string, error) {
	if emailType == "" {
		emailType = "professional"
	}
	path := fmt.Sprintf("/people/%s/email?type=%s", personID, emailType)
	body, status, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", err
	}
	switch status {
	case http.StatusAccepted, http.StatusNotFound:
		// Pending enrichment and missing email are both "no email yet".
		return "", nil
	case http.StatusOK:
	default:
		return "", eris.Errorf("specter: unexpected status %d: %s", status, string(body))
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return "", nil
	}
	var result struct {
		Email string `json:"email"`
		Type  string `json:"type"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", eris.Wrap(err, fmt.Sprintf("specter: unmarshal email for %s", personID))
	}
	return result.Email, nil
}

func (c *httpClient) do(ctx context.Context, method, path string, payload any) ([]byte, int, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, eris.Wrap(err, "specter: marshal request")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, 0, eris.Wrap(err, "specter: create request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, eris.Wrap(err, "specter: send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, eris.Wrap(err, "specter: read response")
	}
	return body, resp.StatusCode, nil
}

package apollo

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://api.apollo.io/api/v1"

// SentinelEmail is the placeholder Apollo returns when an email exists
// but has not been unlocked on the current plan. It must be treated as
// "no email".
const SentinelEmail = "email_not_unlocked@domain.com"

// Client performs lookups against the Apollo API.
//
// "Not found" is an expected outcome reported as a nil result; only
// transport and protocol failures return an error.
type Client interface {
	OrganizationByDomain(ctx context.Context, domain string) (*Organization, error)
	SearchPeople(ctx context.Context, req SearchPeopleRequest) ([]Person, error)
	MatchPerson(ctx context.Context, req MatchRequest) (*Person, error)
}

// Organization is the raw Apollo organization payload.
type Organization struct {
	ID                    string   `json:"id"`
	Name                  string   `json:"name"`
	WebsiteURL            string   `json:"website_url"`
	PrimaryDomain         string   `json:"primary_domain"`
	LinkedInURL           string   `json:"linkedin_url"`
	ShortDescription      string   `json:"short_description"`
	Industry              string   `json:"industry"`
	Keywords              []string `json:"keywords"`
	City                  string   `json:"city"`
	State                 string   `json:"state"`
	EstimatedNumEmployees int      `json:"estimated_num_employees"`
	FoundedYear           int      `json:"founded_year"`
}

// Person is the raw Apollo person payload, shared by search and match.
type Person struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Title       string `json:"title"`
	Email       string `json:"email"`
	LinkedInURL string `json:"linkedin_url"`
}

// SearchPeopleRequest filters a people search by company domain and titles.
type SearchPeopleRequest struct {
	Domain  string
	Titles  []string
	PerPage int
}

// MatchRequest identifies a person for the people/match endpoint. Exactly
// one identification mode should be set: ID, LinkedInURL, or
// FirstName+LastName+OrganizationDomain.
type MatchRequest struct {
	ID                 string
	LinkedInURL        string
	FirstName          string
	LastName           string
	OrganizationDomain string
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

// NewClient creates an Apollo API client.
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

func (c *httpClient) OrganizationByDomain(ctx context.Context, domain string) (*Organization, error) {
	body, status, err := c.do(ctx, "/organizations/enrich", map[string]string{"domain": domain})
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, eris.Errorf("apollo: unexpected status %d: %s", status, string(body))
	}

	var result struct {
		Organization *Organization `json:"organization"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "apollo: unmarshal organization")
	}
	if result.Organization == nil || result.Organization.ID == "" {
		return nil, nil
	}
	return result.Organization, nil
}

func (c *httpClient) SearchPeople(ctx context.Context, req SearchPeopleRequest) ([]Person, error) {
	perPage := req.PerPage
	if perPage <= 0 {
		perPage = 10
	}
	payload := map[string]any{
		"q_organization_domains": []string{req.Domain},
		"person_titles":          req.Titles,
		"per_page":               perPage,
	}

	body, status, err := c.do(ctx, "/mixed_people/search", payload)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, eris.Errorf("apollo: unexpected status %d: %s", status, string(body))
	}

	var result struct {
		People []Person `json:"people"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "apollo: unmarshal people search")
	}
	return result.People, nil
}

func (c *httpClient) MatchPerson(ctx context.Context, req MatchRequest) (*Person, error) {
	payload := map[string]any{
		"reveal_personal_emails": false,
		"reveal_phone_number":    false,
	}
	switch {
	case req.ID != "":
		payload["id"] = req.ID
	case req.LinkedInURL != "":
		payload["linkedin_url"] = req.LinkedInURL
	case req.FirstName != "" && req.LastName != "":
		payload["first_name"] = req.FirstName
		payload["last_name"] = req.LastName
		payload["organization_domain"] = req.OrganizationDomain
	default:
		return nil, nil
	}

	body, status, err := c.do(ctx, "/people/match", payload)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, eris.Errorf("apollo: unexpected status %d: %s", status, string(body))
	}

	var result struct {
		Person *Person `json:"person"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "apollo: unmarshal person match")
	}
	if result.Person == nil || (result.Person.ID == "" && result.Person.Name == "") {
		return nil, nil
	}
	return result.Person, nil
}

func (c *httpClient) do(ctx context.Context, path string, payload any) ([]byte, int, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, eris.Wrap(err, "apollo: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, 0, eris.Wrap(err, "apollo: create request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, eris.Wrap(err, "apollo: send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, eris.Wrap(err, "apollo: read response")
	}
	return body, resp.StatusCode, nil
}

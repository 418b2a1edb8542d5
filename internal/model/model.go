package model

import "strings"

// Status is the final disposition of an enrichment request.
type Status string

const (
	StatusEnriched Status = "enriched" // at least one founder with a contact email
	StatusPartial  Status = "partial"  // founders found, none with an email
	StatusFailed   Status = "failed"   // no company or no founders resolvable
	StatusRejected Status = "rejected" // list source not recognized
)

// Owner is the internal team member whose outreach identity is attached
// to generated emails.
type Owner struct {
	Key            string `json:"key" mapstructure:"key"`
	Email          string `json:"email" mapstructure:"email"`
	DisplayName    string `json:"display_name" mapstructure:"display_name"`
	SignatureName  string `json:"-" mapstructure:"signature_name"`
	SchedulingLink string `json:"-" mapstructure:"scheduling_link"`
}

// FounderRef is a provider-native pointer to a person embedded in a
// company record, resolved to a full Founder later.
type FounderRef struct {
	PersonID string
	FullName string
	Title    string
}

// Company holds the normalized company record for one request. Domain is
// always the caller-supplied domain, even when a provider echoes a
// different canonical one.
type Company struct {
	ID               string   `json:"id,omitempty"`
	Name             string   `json:"name"`
	Domain           string   `json:"domain"`
	Description      string   `json:"description,omitempty"`
	ShortDescription string   `json:"short_description,omitempty"`
	Keywords         []string `json:"keywords,omitempty"`
	Industry         string   `json:"industry,omitempty"`
	Location         string   `json:"location,omitempty"`
	EmployeeCount    int      `json:"employee_count,omitempty"`
	LinkedInURL      string   `json:"linkedin,omitempty"`
	WebsiteURL       string   `json:"website,omitempty"`
	FoundedYear      int      `json:"founded_year,omitempty"`

	FounderRefs   []FounderRef `json:"-"`
	InvestorNames []string     `json:"-"`
}

// Founder is one contactable (or at least identified) founder/executive.
// An empty Email never drops the founder from the list; it only
// suppresses GeneratedEmailBody.
type Founder struct {
	FullName           string `json:"name"`
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	Title              string `json:"title,omitempty"`
	Email              string `json:"email,omitempty"`
	LinkedInURL        string `json:"linkedin,omitempty"`
	GeneratedEmailBody string `json:"generated_email,omitempty"`
}

// SplitFullName derives first/last name by splitting on the first space.
// A single-token name yields an empty last name.
func SplitFullName(full string) (first, last string) {
	full = strings.TrimSpace(full)
	if full == "" {
		return "", ""
	}
	if idx := strings.Index(full, " "); idx > 0 {
		return full[:idx], strings.TrimSpace(full[idx+1:])
	}
	return full, ""
}

// Investor is one resolved investor slot. Name and Domain are empty in
// padded slots.
type Investor struct {
	Name   string `json:"name"`
	Domain string `json:"domain"`
}

// InvestorSlots is the fixed number of investor slots in every result.
const InvestorSlots = 3

// EnrichmentResult is the sole externally observed artifact of a request.
// Investor slots are flattened so spreadsheet-style consumers never branch
// on list length.
type EnrichmentResult struct {
	Status    Status    `json:"status"`
	Message   string    `json:"message,omitempty"`
	Company   *Company  `json:"company,omitempty"`
	Founders  []Founder `json:"founders"`
	Owner     *Owner    `json:"owner,omitempty"`
	RequestID string    `json:"request_id,omitempty"`

	Investor1Name   string `json:"investor_1_name"`
	Investor1Domain string `json:"investor_1_domain"`
	Investor2Name   string `json:"investor_2_name"`
	Investor2Domain string `json:"investor_2_domain"`
	Investor3Name   string `json:"investor_3_name"`
	Investor3Domain string `json:"investor_3_domain"`
}

// SetInvestors fills the flat investor slots from a resolved list,
// padding missing slots with empty values.
func (r *EnrichmentResult) SetInvestors(investors []Investor) {
	slots := make([]Investor, InvestorSlots)
	copy(slots, investors)
	r.Investor1Name, r.Investor1Domain = slots[0].Name, slots[0].Domain
	r.Investor2Name, r.Investor2Domain = slots[1].Name, slots[1].Domain
	r.Investor3Name, r.Investor3Domain = slots[2].Name, slots[2].Domain
}

// Package reason holds the LLM-backed vertical classifier and the
// deterministic outreach-email composer. The prose lives in a Playbook
// so content edits never touch code.
package reason

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Playbook is the content table the composer assembles emails from.
// All format strings use fmt verbs.
type Playbook struct {
	Greeting        string             `yaml:"greeting"`         // takes founder first name
	NeutralGreeting string             `yaml:"neutral_greeting"` // used when first name unknown
	BasePitch       string             `yaml:"base_pitch"`
	InterestLine    string             `yaml:"interest_line"` // takes company name
	CallToAction    string             `yaml:"call_to_action"` // takes scheduling link
	Closing         string             `yaml:"closing"`
	VerticalAddenda map[string]string  `yaml:"vertical_addenda"`
	LocationAddenda []LocationAddendum `yaml:"location_addenda"`
}

// LocationAddendum adds one sentence when the company location contains
// any of the keywords. Entries are checked in order and at most one
// applies.
type LocationAddendum struct {
	Keywords []string `yaml:"keywords"`
	Line     string   `yaml:"line"`
}

// LoadPlaybook reads a playbook from a YAML file.
func LoadPlaybook(path string) (*Playbook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "reason: read playbook %s", path)
	}

	// The YAML has a top-level "playbook" key
	var wrapper struct {
		Playbook Playbook `yaml:"playbook"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "reason: parse playbook")
	}

	return &wrapper.Playbook, nil
}

// DefaultPlaybook is the built-in outreach content.
func DefaultPlaybook() *Playbook {
	return &Playbook{
		Greeting:        "Hi %s,",
		NeutralGreeting: "Hi there,",
		BasePitch: "I just came across you guys and wanted to introduce our fund, " +
			"ScOp Venture Capital - our team all comes from operating backgrounds in " +
			"software, and we lead pre-seed through Series A rounds in vertical " +
			"software and AI.",
		InterestLine: "%s looks really interesting, I would love to learn more " +
			"about the business and what you've built.",
		CallToAction: "Any times work to chat in the next few weeks? %s",
		Closing:      "All the best!",
		VerticalAddenda: map[string]string{
			"Financial Services": "We have experience with companies in financial " +
				"services - our portfolio company Rogo raised a $50m Series B from " +
				"Thrive building a full AI suite for banks and large financial institutions.",
			"Construction": "We have deep experience and network in construction - " +
				"our partner Kevin wrote the first check to Procore, and we have the " +
				"CEO and lots of early Procore employees as LPs.",
			"Proptech": "We have strong experience in proptech, and have the " +
				"founders of Appfolio and Procore as LPs.",
			"AI Infrastructure": "Our partners Kevin and Ivan built and sold the " +
				"knowledge graph software that powered Amazon Alexa, and we have " +
				"founders of MongoDB, Twilio, DoubleClick, and more as LPs.",
			"HealthTech": "We have some experience in healthcare - our portfolio " +
				"includes a patient communications company, an RCM platform, and a " +
				"consumer health tracking app.",
			"Vertical SaaS": "Our partner Kevin founded DoubleClick (sold to " +
				"Google), and Graphiq (sold to Amazon) - we have the founders of " +
				"Procore, Appfolio, MongoDB, Twilio, and more as LPs.",
		},
		LocationAddenda: []LocationAddendum{
			{
				Keywords: []string{"new york", "nyc", "brooklyn", "manhattan"},
				Line: "We have several portcos in New York as well (Rogo, " +
					"Promptlayer, Pangram Labs, SuiteOp).",
			},
			{
				Keywords: []string{
					"santa barbara", "los angeles", "san diego",
					"southern california", "socal", "orange county",
				},
				Line: "We're based in Santa Barbara and have pretty good local " +
					"coverage and network throughout SoCal.",
			},
		},
	}
}

package reason

import (
	"fmt"
	"strings"

	"github.com/scop-vc/enrich-cli/internal/model"
)

// ComposeEmail assembles the outreach body from the playbook. It is
// pure templating: identical inputs always produce byte-identical
// output. Paragraph order is greeting, base pitch, at most one vertical
// addendum, at most one location addendum, interest line, call to
// action, closing plus signature.
func (r *Reasoner) ComposeEmail(company *model.Company, founder *model.Founder, vertical Vertical, owner model.Owner) string {
	pb := r.playbook

	greeting := pb.NeutralGreeting
	if founder != nil && founder.FirstName != "" {
		greeting = fmt.Sprintf(pb.Greeting, founder.FirstName)
	}

	paragraphs := []string{greeting, pb.BasePitch}

	if addendum, ok := pb.VerticalAddenda[string(vertical)]; ok {
		paragraphs = append(paragraphs, addendum)
	}
	if line := pb.locationLine(company); line != "" {
		paragraphs = append(paragraphs, line)
	}

	companyName := ""
	if company != nil {
		companyName = company.Name
	}
	paragraphs = append(paragraphs,
		fmt.Sprintf(pb.InterestLine, companyName),
		fmt.Sprintf(pb.CallToAction, owner.SchedulingLink),
		pb.Closing+"\n"+owner.SignatureName,
	)

	return strings.Join(paragraphs, "\n\n")
}

// locationLine returns the first location addendum whose keyword list
// matches the company location, or empty. At most one applies.
func (pb *Playbook) locationLine(company *model.Company) string {
	if company == nil || company.Location == "" {
		return ""
	}
	location := strings.ToLower(company.Location)
	for _, a := range pb.LocationAddenda {
		for _, kw := range a.Keywords {
			if strings.Contains(location, strings.ToLower(kw)) {
				return a.Line
			}
		}
	}
	return ""
}

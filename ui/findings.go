package ui

import (
	"html/template"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// findingsMarkdown is the static conclusions block of the main dashboard.
const findingsMarkdown = `
### Conclusions

- **Common factors:** overtime, poor work-life balance, and low monthly
  income drive attrition across the whole company.
- **Sales:** frequent business travel combined with overtime is the
  decisive factor; until both are addressed, sales attrition stays high.
- **Early career (<= 3 years):** low job satisfaction and low pay push
  juniors out before they settle in.

### Recommendations

1. **Workload and compensation** — cut unnecessary overtime and attach
   clear compensation (time off, allowances) where it remains; review the
   sales workload first.
2. **Travel policy** — for travel-heavy roles, guarantee remote days and
   realistic travel allowances.
3. **Early-career onboarding** — mandatory mentoring and a visible career
   path for employees in their first three years.
`

// salesFindingsMarkdown is the static conclusions block of the sales dive.
const salesFindingsMarkdown = `
### Where sales attrition concentrates

Sales attrition spikes where **low monthly income, frequent overtime, and a
low job level (1-2)** intersect, and the highest-risk group is employees in
their first two years.

1. **Pay competitiveness** — benchmark the leaver group's lower income
   quartile and redesign incentives around it.
2. **Career path** — a published promotion roadmap, plus mandatory career
   reviews for anyone three or more years past their last promotion.
3. **Workload** — audit the processes behind recurring overtime and offer
   flexible arrangements to frequent travelers.
`

// renderMarkdown converts trusted, static markdown into template HTML.
func renderMarkdown(src string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return template.HTML(markdown.ToHTML([]byte(src), p, renderer))
}

// FindingsHTML returns the rendered dashboard conclusions.
func FindingsHTML() template.HTML {
	return renderMarkdown(findingsMarkdown)
}

// SalesFindingsHTML returns the rendered sales-dive conclusions.
func SalesFindingsHTML() template.HTML {
	return renderMarkdown(salesFindingsMarkdown)
}

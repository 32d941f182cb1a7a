// Package strategic parses the strategic priorities document and maps
// tasks, projects, and people onto the priorities it declares. Nothing
// about the priorities is hardcoded; the document is the source of
// truth.
package strategic

import (
	"regexp"
	"strings"
)

// Priority is one strategic priority block from the context document.
type Priority struct {
	Key         string   `json:"key"`
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Keywords    []string `json:"keywords,omitempty"`
	People      []string `json:"people,omitempty"`
	Exclusions  []string `json:"exclusions,omitempty"`
}

// Context is the parsed strategic priorities document.
type Context struct {
	Priorities []Priority
	// PeopleMap maps lowercase person names to priority keys, from the
	// people table if the document has one.
	PeopleMap map[string]string
	// Content is the raw document text, kept for alignment checks.
	Content string
}

// OtherKey is the catch-all bucket for work matching no priority.
const OtherKey = "other"

var (
	priorityHeaderRe = regexp.MustCompile(`(?m)^###\s+Priority\s+\d+:\s*(.+?)\s*$`)
	alsoKnownRe      = regexp.MustCompile(`\*\*Also known as:\*\*\s*(.+)`)
	peopleLineRe     = regexp.MustCompile(`\*\*(?:Lead|Key partners|Agency partner):\*\*\s*(.+)`)
	nameParenRe      = regexp.MustCompile(`([A-Z][a-z]+)\s*\(`)
	relatedWorkRe    = regexp.MustCompile(`\*\*Related projects/work:\*\*\s*\n((?:- .+\n?)+)`)
	bulletRe         = regexp.MustCompile(`-\s+(.+)`)
	markdownLinkRe   = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	noteRe           = regexp.MustCompile(`\*\*Note:\*\*\s*(.+)`)
	exclusionRe      = regexp.MustCompile(`(?i)"([^"]+)"\s+is\s+NOT`)
	peopleTableRe    = regexp.MustCompile(`(?s)###[^\n]*People[^\n]*\n.*?\n((?:\|[^\n]*\|\n?)+)`)
)

// ParseContext reads priority blocks ("### Priority N: Name"), their
// aliases, people, related-work keywords, and NOT-exclusions, plus the
// people table, out of the context document.
func ParseContext(content string) *Context {
	ctx := &Context{
		PeopleMap: make(map[string]string),
		Content:   content,
	}

	headers := priorityHeaderRe.FindAllStringSubmatchIndex(content, -1)
	for i, header := range headers {
		blockEnd := len(content)
		if i+1 < len(headers) {
			blockEnd = headers[i+1][0]
		}
		// Priority blocks end at a horizontal rule or the next section.
		block := content[header[0]:blockEnd]
		if cut := strings.Index(block, "\n---"); cut >= 0 {
			block = block[:cut]
		}
		if cut := strings.Index(block, "\n## "); cut >= 0 {
			block = block[:cut]
		}

		fullName := strings.TrimSpace(content[header[2]:header[3]])
		p := Priority{Name: fullName, DisplayName: fullName}
		if paren := strings.Index(fullName, "("); paren >= 0 {
			p.Name = strings.TrimSpace(fullName[:paren])
		}
		p.Key = slug(p.Name)

		if m := alsoKnownRe.FindStringSubmatch(block); m != nil {
			for _, kw := range strings.Split(m[1], ",") {
				if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
					p.Keywords = append(p.Keywords, kw)
				}
			}
		}

		for _, m := range peopleLineRe.FindAllStringSubmatch(block, -1) {
			for _, name := range nameParenRe.FindAllStringSubmatch(m[1], -1) {
				p.People = append(p.People, strings.ToLower(name[1]))
			}
		}

		if m := relatedWorkRe.FindStringSubmatch(block); m != nil {
			for _, bullet := range bulletRe.FindAllStringSubmatch(m[1], -1) {
				item := strings.ReplaceAll(bullet[1], `"`, "")
				item = markdownLinkRe.ReplaceAllString(item, "$1")
				item = strings.ToLower(strings.TrimSpace(item))
				if item == "" {
					continue
				}
				p.Keywords = append(p.Keywords, item)
				for _, word := range strings.Fields(item) {
					if len(word) > 2 {
						p.Keywords = append(p.Keywords, word)
					}
				}
			}
		}

		if m := noteRe.FindStringSubmatch(block); m != nil {
			if excl := exclusionRe.FindStringSubmatch(m[1]); excl != nil {
				p.Exclusions = append(p.Exclusions, strings.ToLower(excl[1]))
			}
		}

		ctx.Priorities = append(ctx.Priorities, p)
	}

	ctx.parsePeopleTable(content)
	return ctx
}

// parsePeopleTable reads a "### People ..." markdown table mapping
// person to primary priority. Rows with bracketed placeholders or an
// "All" priority are skipped.
func (c *Context) parsePeopleTable(content string) {
	m := peopleTableRe.FindStringSubmatch(content)
	if m == nil {
		return
	}
	rows := strings.Split(m[1], "\n")
	for _, row := range rows {
		row = strings.TrimSpace(row)
		if row == "" {
			continue
		}
		if strings.HasPrefix(row, "|---") || strings.HasPrefix(row, "| ---") {
			continue
		}
		// Header rows fall through harmlessly; their last cell names no
		// priority, so nothing is mapped.
		var cells []string
		for _, cell := range strings.Split(row, "|") {
			if cell = strings.TrimSpace(cell); cell != "" {
				cells = append(cells, cell)
			}
		}
		if len(cells) < 3 {
			continue
		}
		person := strings.ToLower(cells[0])
		if strings.HasPrefix(person, "[") && strings.HasSuffix(person, "]") {
			continue
		}
		priorityName := strings.ToLower(cells[len(cells)-1])
		if priorityName == "all" || strings.HasPrefix(priorityName, "all ") {
			continue
		}
		for _, p := range c.Priorities {
			if strings.Contains(priorityName, strings.ToLower(p.Name)) {
				c.PeopleMap[person] = p.Key
				break
			}
		}
	}
}

// PersonPriority returns the priority key a person belongs to, or ""
// if the person is not in the people table.
func (c *Context) PersonPriority(name string) string {
	return c.PeopleMap[strings.ToLower(name)]
}

// ClassifyTitle maps a task or project title onto a priority key.
// People names win first (most specific), then keywords scored so that
// shorter keywords count as more specific, with NOT-exclusions honored.
// Unmatched work lands in "other".
func (c *Context) ClassifyTitle(title, projectName string) string {
	combined := strings.ToLower(title + " " + projectName)

	for _, word := range strings.Fields(combined) {
		if key, ok := c.PeopleMap[strings.Trim(word, ".,;:!?()")]; ok {
			return key
		}
	}

	for _, p := range c.Priorities {
		for _, person := range p.People {
			if strings.Contains(combined, person) {
				return p.Key
			}
		}
	}

	best := ""
	bestScore := 0.0
	for _, p := range c.Priorities {
		if containsAny(combined, p.Exclusions) {
			continue
		}
		for _, kw := range p.Keywords {
			if !strings.Contains(combined, kw) {
				continue
			}
			score := 1000 / float64(len(kw)+1)
			if score > bestScore {
				bestScore = score
				best = p.Key
			}
		}
	}
	if best != "" {
		return best
	}
	return OtherKey
}

// Terms returns every priority name, display name, and keyword,
// lowercased, for strategic-alignment checks.
func (c *Context) Terms() []string {
	var terms []string
	for _, p := range c.Priorities {
		terms = append(terms, p.Keywords...)
		if p.Name != "" {
			terms = append(terms, strings.ToLower(p.Name))
		}
		if p.DisplayName != "" && p.DisplayName != p.Name {
			terms = append(terms, strings.ToLower(p.DisplayName))
		}
	}
	return terms
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// slug derives a stable key from a priority name: lowercase with
// non-alphanumeric runs collapsed to underscores.
func slug(name string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

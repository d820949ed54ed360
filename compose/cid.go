package compose

import "regexp"

// cidPattern finds src attributes that point at a Content-id. It is a plain
// pattern match over the HTML, not a parse.
var cidPattern = regexp.MustCompile(`(?im)src=('|")cid:([^'"]*)('|")`)

// ContentIDs returns the cid: references in html in the order they appear,
// each name once.
func ContentIDs(html string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range cidPattern.FindAllStringSubmatch(html, -1) {
		name := m[2]
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

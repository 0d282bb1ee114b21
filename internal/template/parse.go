package template

import "strings"

// The body markup is parsed once at registration into a node sequence.
// Rendering walks the nodes instead of doing ordered regex replacement,
// which keeps substituted values from being re-scanned for markers.

type node interface{}

// textNode is a literal run of markup.
type textNode string

// varNode is a {{field}} interpolation marker.
type varNode string

// sectionNode is a {{#field}}...{{/field}} block, or its negated
// {{^field}}...{{/field}} form when inverted is set.
type sectionNode struct {
	field    string
	inverted bool
	children []node
}

// parse tokenizes a template body. It is deliberately permissive:
// unterminated markers stay literal text, unmatched {{/field}} tags are
// dropped, and sections left open at the end of input are closed there.
func parse(body string) []node {
	root := &sectionNode{}
	stack := []*sectionNode{root}
	top := func() *sectionNode { return stack[len(stack)-1] }

	rest := body
	for {
		open := strings.Index(rest, "{{")
		if open < 0 {
			break
		}
		end := strings.Index(rest[open:], "}}")
		if end < 0 {
			break
		}

		if open > 0 {
			top().children = append(top().children, textNode(rest[:open]))
		}
		tag := strings.TrimSpace(rest[open+2 : open+end])
		rest = rest[open+end+2:]

		switch {
		case tag == "" || strings.ContainsAny(tag, "{}"):
			// Malformed marker, discard like the final cleanup pass would.
		case strings.HasPrefix(tag, "#"):
			s := &sectionNode{field: strings.TrimSpace(tag[1:])}
			top().children = append(top().children, s)
			stack = append(stack, s)
		case strings.HasPrefix(tag, "^"):
			s := &sectionNode{field: strings.TrimSpace(tag[1:]), inverted: true}
			top().children = append(top().children, s)
			stack = append(stack, s)
		case strings.HasPrefix(tag, "/"):
			name := strings.TrimSpace(tag[1:])
			// Close the nearest matching open section; drop the tag when
			// nothing matches.
			for i := len(stack) - 1; i > 0; i-- {
				if stack[i].field == name {
					stack = stack[:i]
					break
				}
			}
		default:
			top().children = append(top().children, varNode(tag))
		}
	}

	if rest != "" {
		top().children = append(top().children, textNode(rest))
	}
	return root.children
}

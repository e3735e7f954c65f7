// Package markup extracts structured fields embedded in issue comment bodies.
//
// Fields are written as HTML comments so they stay invisible when GitHub
// renders the comment:
//
//	<!-- data key="update" start -->
//	free text, one or more lines
//	<!-- data end -->
//	<!-- data key="isSummaryReport" value="true" -->
package markup

import (
	"regexp"
	"strings"
)

// Fields maps a field name to its value.
type Fields map[string]string

var (
	blockStartPattern = regexp.MustCompile(`<!-- data key="(\w+)" start -->`)
	blockEndPattern   = regexp.MustCompile(`<!-- data end -->`)
	inlinePattern     = regexp.MustCompile(`<!-- data key="(\w+)" value="(\w+)" -->`)
)

// parser holds the only piece of scan state: the block currently open.
type parser struct {
	open   string
	fields Fields
}

// Parse scans body line by line and returns the fields it declares.
//
// Block fields collect every line up to the end marker, trimmed and
// newline-terminated, and repeated blocks for the same name append. Inline
// fields overwrite. A start marker inside an open block switches the target
// field without closing anything, and an unclosed block keeps what it
// collected.
func Parse(body string) Fields {
	p := &parser{fields: make(Fields)}
	for line := range strings.Lines(body) {
		p.line(line)
	}
	return p.fields
}

func (p *parser) line(line string) {
	if m := blockStartPattern.FindStringSubmatch(line); m != nil {
		p.open = m[1]
		return
	}

	if blockEndPattern.MatchString(line) {
		p.open = ""
		return
	}

	if p.open != "" {
		p.fields[p.open] += strings.TrimSpace(line) + "\n"
		return
	}

	if m := inlinePattern.FindStringSubmatch(line); m != nil {
		p.fields[m[1]] = m[2]
	}
}

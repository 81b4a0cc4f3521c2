package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// Scanner reports the tags of one family in content order. Like
// bufio.Scanner it is lazy and cannot be restarted; create a new Scanner to
// scan again. Unterminated tags are never reported.
type Scanner struct {
	content string
	family  Family
	z       *html.Tokenizer
	offset  int
	match   TagMatch
	done    bool
}

func NewScanner(content string, family Family) *Scanner {
	return &Scanner{
		content: content,
		family:  family,
		z:       html.NewTokenizer(strings.NewReader(content)),
	}
}

// Next advances to the next match and reports whether there is one.
func (s *Scanner) Next() bool {
	if s.done {
		return false
	}

	for {
		tt := s.z.Next()
		start := s.offset
		s.offset += len(s.z.Raw())

		switch tt {
		case html.ErrorToken:
			s.done = true
			s.match = TagMatch{}
			return false
		case html.StartTagToken, html.SelfClosingTagToken:
			// TagName lower-cases the token in place, so the tag text is
			// taken from the content rather than from Raw.
			tag := s.content[start:s.offset]
			name, hasAttr := s.z.TagName()
			if string(name) != s.family.Element {
				continue
			}

			attrs := readAttrs(s.z, hasAttr)
			if s.family.Accept != nil && !s.family.Accept(attrs) {
				continue
			}

			url := s.family.URL
			if url == "" {
				var ok bool
				if url, ok = attrs.Get(s.family.URLAttr); !ok {
					continue
				}
			}

			s.match = TagMatch{
				Tag:    tag,
				URL:    url,
				Offset: start,
				Attrs:  attrs,
			}
			return true
		}
	}
}

func (s *Scanner) Match() TagMatch {
	return s.match
}

// ScanAll collects every match of family in content.
func ScanAll(content string, family Family) []TagMatch {
	var matches []TagMatch
	scanner := NewScanner(content, family)
	for scanner.Next() {
		matches = append(matches, scanner.Match())
	}
	return matches
}

// Contains reports whether content has at least one match of family.
func Contains(content string, family Family) bool {
	return NewScanner(content, family).Next()
}

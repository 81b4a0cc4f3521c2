package markup

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Attrs maps lower-cased attribute names to their decoded values. When an
// attribute repeats, the first occurrence wins.
type Attrs map[string]string

// ParseAttrs reads the attributes of the first tag in tag.
func ParseAttrs(tag string) Attrs {
	z := html.NewTokenizer(strings.NewReader(tag))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return Attrs{}
		case html.StartTagToken, html.SelfClosingTagToken:
			_, hasAttr := z.TagName()
			return readAttrs(z, hasAttr)
		}
	}
}

func readAttrs(z *html.Tokenizer, hasAttr bool) Attrs {
	attrs := Attrs{}
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		name := string(key)
		if _, seen := attrs[name]; !seen {
			attrs[name] = string(val)
		}
	}
	return attrs
}

func (a Attrs) Get(name string) (string, bool) {
	val, ok := a[name]
	return val, ok
}

func (a Attrs) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// Int returns the attribute as an integer, 0 when missing or not numeric.
func (a Attrs) Int(name string) int {
	return Atoi(a[name])
}

func (a Attrs) Classes() []string {
	return strings.Fields(a["class"])
}

func (a Attrs) HasClass(class string) bool {
	for _, c := range a.Classes() {
		if c == class {
			return true
		}
	}
	return false
}

func (a Attrs) HasClassPrefix(prefix string) bool {
	for _, c := range a.Classes() {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

// Atoi parses a non-negative integer, degrading to 0 on any failure.
func Atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

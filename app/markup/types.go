// Package markup scans post content for tags of a given family and rewrites
// them in place. It works on tag boundaries reported by a lenient HTML
// tokenizer rather than on a full document tree.
package markup

// Family describes the tags a Scanner reports.
type Family struct {
	Name    string
	Element string

	// URLAttr names the attribute the match URL is read from. Tags without
	// it are not reported.
	URLAttr string

	// URL, when set, is reported as the match URL instead of an attribute
	// value. Used for embed signatures that map to a fixed script.
	URL string

	// Accept optionally filters tags of the element by their attributes.
	Accept func(attrs Attrs) bool
}

var (
	Image  = Family{Name: "image", Element: "img", URLAttr: "src"}
	Iframe = Family{Name: "iframe", Element: "iframe", URLAttr: "src"}
)

// TagMatch is only valid against the exact snapshot it was scanned from.
type TagMatch struct {
	Tag    string
	URL    string
	Offset int
	Attrs  Attrs
}

package navtree

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleCase returns a copy of cfg with every item and CTA label title-cased
// for the given language. Hrefs are left alone.
func TitleCase(cfg NavigationConfig, tag language.Tag) NavigationConfig {
	caser := cases.Title(tag, cases.NoLower)
	out := cfg.Clone()

	var walk func(items []*NavItem)
	walk = func(items []*NavItem) {
		for _, it := range items {
			it.Label = caser.String(it.Label)
			walk(it.Children)
		}
	}
	walk(out.PrimaryItems)
	walk(out.SecondaryItems)
	for i := range out.CTAs {
		out.CTAs[i].Label = caser.String(out.CTAs[i].Label)
	}
	return out
}

package navtree

// DefaultLogoText is the placeholder logo text of the empty baseline.
const DefaultLogoText = "Charity Name"

// MaxDepth is the deepest level a NavItem tree may reach (root, child, grandchild).
const MaxDepth = 3

// NavItem is one node of the navigation tree.
type NavItem struct {
	Label    string     `json:"label" yaml:"label"`
	Href     string     `json:"href,omitempty" yaml:"href,omitempty"`
	Children []*NavItem `json:"children,omitempty" yaml:"children,omitempty"` // nil for a leaf, never empty
	Intro    string     `json:"intro,omitempty" yaml:"intro,omitempty"`       // root items only
}

// CTAVariant is the visual style of a call-to-action button.
type CTAVariant string

const (
	CTAPrimary   CTAVariant = "primary"
	CTASecondary CTAVariant = "secondary"
)

// NavCTA is a call-to-action button. CTAs are sourced outside inference;
// the type lives here because it shares the output container.
type NavCTA struct {
	Label   string     `json:"label" yaml:"label"`
	Href    string     `json:"href,omitempty" yaml:"href,omitempty"`
	Variant CTAVariant `json:"variant" yaml:"variant"`
}

// NavigationConfig is the complete navigation of a wireframe.
type NavigationConfig struct {
	LogoText         string     `json:"logoText" yaml:"logoText"`
	ShowSecondaryNav bool       `json:"showSecondaryNav" yaml:"showSecondaryNav"`
	ShowSearch       bool       `json:"showSearch" yaml:"showSearch"`
	SecondaryItems   []*NavItem `json:"secondaryItems" yaml:"secondaryItems"`
	PrimaryItems     []*NavItem `json:"primaryItems" yaml:"primaryItems"`
	CTAs             []NavCTA   `json:"ctas" yaml:"ctas"`
}

// EmptyBaseline returns a fresh configuration with no content. It is the
// only default inference ever falls back to.
func EmptyBaseline() NavigationConfig {
	return NavigationConfig{
		LogoText:         DefaultLogoText,
		ShowSecondaryNav: true,
		ShowSearch:       true,
		SecondaryItems:   []*NavItem{},
		PrimaryItems:     []*NavItem{},
		CTAs:             []NavCTA{},
	}
}

// NewItem builds a leaf item whose href is synthesized from the label.
func NewItem(label string) *NavItem {
	return &NavItem{Label: label, Href: Slug(label)}
}

// AddChild appends c to the item's children.
func (n *NavItem) AddChild(c *NavItem) {
	n.Children = append(n.Children, c)
}

// Depth returns the maximum depth of a forest; 0 for no items, 1 for roots only.
func Depth(items []*NavItem) int {
	deepest := 0
	for _, it := range items {
		if it == nil {
			continue
		}
		if d := 1 + Depth(it.Children); d > deepest {
			deepest = d
		}
	}
	return deepest
}

// Count returns the total number of items in a forest.
func Count(items []*NavItem) int {
	n := 0
	for _, it := range items {
		if it == nil {
			continue
		}
		n += 1 + Count(it.Children)
	}
	return n
}

// Clone returns a deep copy of the configuration.
func (c NavigationConfig) Clone() NavigationConfig {
	out := c
	out.SecondaryItems = cloneItems(c.SecondaryItems)
	out.PrimaryItems = cloneItems(c.PrimaryItems)
	out.CTAs = append([]NavCTA{}, c.CTAs...)
	return out
}

func cloneItems(items []*NavItem) []*NavItem {
	out := make([]*NavItem, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		cp := *it
		if len(it.Children) > 0 {
			cp.Children = cloneItems(it.Children)
		} else {
			cp.Children = nil
		}
		out = append(out, &cp)
	}
	return out
}

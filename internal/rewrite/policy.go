// SPDX-License-Identifier: MPL-2.0

package rewrite

import "strings"

type (
	// Policy holds the project-specific rules applied to resolved references.
	Policy struct {
		// VendoredRoots are canonical prefixes of externally maintained
		// libraries whose references are left alone.
		VendoredRoots []string
		// ExcludedSources are physical path prefixes whose references are left alone.
		ExcludedSources []string
		// Marker must appear in a canonical id for it to be rewritten.
		Marker string
		// Bootstrap names an identifier that stays untouched in one subtree.
		Bootstrap Bootstrap
		// ClientPrefix is the physical subtree served from ClientRoot.
		ClientPrefix string
		// GeneralRoot and ClientRoot prefix physical paths in rewritten urls.
		GeneralRoot string
		ClientRoot  string
		// Fallback is tried when a canonical id is not indexed.
		Fallback Fallback
	}

	// Bootstrap is an identifier reserved by the files of one directory.
	Bootstrap struct {
		Name string
		Dir  string
	}

	// Fallback replaces one canonical prefix with another.
	Fallback struct {
		From string
		To   string
	}
)

// DefaultPolicy returns the rules for the devtools tree.
func DefaultPolicy() Policy {
	return Policy{
		VendoredRoots: []string{
			"resource://gre/modules/devtools/acorn",
			"resource://gre/modules/devtools/tern",
			"resource://gre/modules/devtools/sourcemap",
			"resource://test",
		},
		ExcludedSources: []string{"devtools/shared/gcli/source"},
		Marker:          "devtools",
		Bootstrap:       Bootstrap{Name: "main", Dir: "addon-sdk"},
		ClientPrefix:    "devtools/client",
		GeneralRoot:     "resource://gre/modules/",
		ClientRoot:      "resource:///modules/",
		Fallback:        Fallback{From: "resource:///", To: "resource://gre/"},
	}
}

func (p Policy) isVendored(resource string) bool {
	return hasAnyPrefix(resource, p.VendoredRoots)
}

func (p Policy) isExcluded(source string) bool {
	return hasAnyPrefix(source, p.ExcludedSources)
}

func (p Policy) isBootstrap(file, id string) bool {
	return p.Bootstrap.Name != "" && id == p.Bootstrap.Name && underDir(file, p.Bootstrap.Dir)
}

func (p Policy) isOutsideProject(resource string) bool {
	return p.Marker != "" && !strings.Contains(resource, p.Marker)
}

// fallback returns resource with the fallback prefix replaced once.
func (p Policy) fallback(resource string) (string, bool) {
	if p.Fallback.From == "" || !strings.HasPrefix(resource, p.Fallback.From) {
		return "", false
	}
	return p.Fallback.To + strings.TrimPrefix(resource, p.Fallback.From), true
}

// canonicalURL returns the url serving the physical path source.
func (p Policy) canonicalURL(source string) string {
	if p.ClientPrefix != "" && underDir(source, p.ClientPrefix) {
		return p.ClientRoot + source
	}
	return p.GeneralRoot + source
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// underDir reports whether the slash-separated path p is dir or lies below it.
func underDir(p, dir string) bool {
	if dir == "" {
		return false
	}
	p = strings.TrimPrefix(p, "./")
	return p == dir || strings.HasPrefix(p, dir+"/")
}

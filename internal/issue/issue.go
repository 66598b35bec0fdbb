// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

// Id identifies an entry in the issue catalog.
//
//nolint:revive // Id mirrors the catalog naming used across the CLI layer
type Id int

const (
	ConfigLoadFailedId Id = iota + 1
	ProjectRootNotFoundId
	DescriptorHeaderInvalidId
	ReferenceUnmappedId
	SourceWriteFailedId
)

type (
	// MarkdownMsg is catalog help text in Markdown.
	MarkdownMsg string

	// HttpLink is a documentation link shown under "See also".
	//
	//nolint:revive // kept consistent with MarkdownMsg naming
	HttpLink string

	// Issue is a catalog entry with Markdown help.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
	}
)

// Id returns the catalog identifier.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the raw Markdown help text.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// DocLinks returns a copy of the documentation links.
func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Render renders the help text for a terminal using the glamour style at stylePath.
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 {
		md += "\n\n## See also\n"
		for _, link := range i.docLinks {
			md += "- <" + string(link) + ">\n"
		}
	}
	return render(md, stylePath)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or does not match the schema.

## Things you can try:
- Print the configuration that would be used:
~~~
$ modrewrite config show
~~~
- Regenerate a default file and edit it again:
~~~
$ modrewrite config init
~~~
- Namespace roots must start with the configured scheme (default ` + "`resource://`" + `).`,
	}

	projectRootNotFoundIssue = &Issue{
		id: ProjectRootNotFoundId,
		mdMsg: `
# Project tree not found!

The project root or its module directory could not be listed.

## Things you can try:
- Run from the top of the source checkout, or pass the root explicitly:
~~~
$ modrewrite run /path/to/checkout
~~~
- Check that ` + "`module_dir`" + ` in your configuration names an existing directory.`,
	}

	descriptorHeaderInvalidIssue = &Issue{
		id: DescriptorHeaderInvalidId,
		mdMsg: `
# Build descriptor header could not be parsed!

A line starting with the build-array marker did not have the expected shape.
The run was stopped so that no subtree is mapped to the wrong canonical root.

## Expected forms:
~~~python
EXTRA_JS_MODULES.devtools.shared += [
    'event-emitter.js',
]
EXTRA_JS_MODULES['devtools']['client'] += [
    'main.js',
]
~~~

## Things you can try:
- Fix the header line reported above
- Check that ` + "`array_marker`" + ` in your configuration matches the descriptors`,
	}

	referenceUnmappedIssue = &Issue{
		id: ReferenceUnmappedId,
		mdMsg: `
# Some references were left unchanged

These identifiers resolved to a canonical id, but no build descriptor declares
a file for it. The call sites were not modified.

## Things you can try:
- Inspect the index built from the descriptors:
~~~
$ modrewrite index --format yaml
~~~
- Check how an identifier resolves:
~~~
$ modrewrite resolve --root . devtools/shared/event-emitter
~~~
- Add a namespace entry, or list the root under ` + "`vendored_roots`" + ` to ignore it.`,
	}

	sourceWriteFailedIssue = &Issue{
		id: SourceWriteFailedId,
		mdMsg: `
# Failed to write a rewritten file!

The rewritten contents could not be saved. Files written before the failure
keep their new contents.

## Things you can try:
- Check file permissions in the project tree
- Preview the remaining edits without writing:
~~~
$ modrewrite run --dry-run --show-edits
~~~`,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():        configLoadFailedIssue,
		projectRootNotFoundIssue.Id():     projectRootNotFoundIssue,
		descriptorHeaderInvalidIssue.Id(): descriptorHeaderInvalidIssue,
		referenceUnmappedIssue.Id():       referenceUnmappedIssue,
		sourceWriteFailedIssue.Id():       sourceWriteFailedIssue,
	}
)

// Values returns all catalog entries ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, is := range issues {
		out = append(out, is)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return out
}

// Get returns the catalog entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}

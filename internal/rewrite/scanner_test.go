// SPDX-License-Identifier: MPL-2.0

package rewrite

import (
	"testing"
)

func TestScanner_DirectCalls(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		wantID  string
		keyword string
		kind    Kind
	}{
		{"Cu.import", `Cu.import("resource://gre/modules/Services.jsm");`, "resource://gre/modules/Services.jsm", "Cu.import", EagerImport},
		{"Components.utils.import", `Components.utils.import('resource://gre/modules/Task.jsm', this);`, "resource://gre/modules/Task.jsm", "Components.utils.import", EagerImport},
		{"require", `const EventEmitter = require("devtools/toolkit/event-emitter");`, "devtools/toolkit/event-emitter", "require", DependencyRequire},
		{"devtoolsRequire", `devtoolsRequire('devtools/server/main')`, "devtools/server/main", "devtoolsRequire", DependencyRequire},
		{"member callee", `mm.loadFrameScript("resource://gre/modules/devtools/frame.js", false);`, "resource://gre/modules/devtools/frame.js", "loadFrameScript", EagerImport},
		{"whitespace before paren and literal", "require (\n  'devtools/shared/a')", "devtools/shared/a", "require", DependencyRequire},
		{"empty literal", `require("")`, "", "require", DependencyRequire},
	}

	scanner := NewScanner(DefaultCallSites())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			refs := scanner.Scan([]byte(tt.text))
			if len(refs) != 1 {
				t.Fatalf("Scan() found %d references, want 1", len(refs))
			}
			ref := refs[0]
			if ref.RawID != tt.wantID || ref.Keyword != tt.keyword || ref.Kind != tt.kind {
				t.Errorf("ref = %+v", ref)
			}
			if got := tt.text[ref.ID.Start:ref.ID.End]; got != tt.wantID {
				t.Errorf("ID span covers %q, want %q", got, tt.wantID)
			}
			if ref.Accessor {
				t.Error("Accessor = true for a direct call")
			}
		})
	}
}

func TestScanner_KeywordSegmentBoundary(t *testing.T) {
	t.Parallel()

	text := `myrequire("devtools/a");
ChromeUtils.import("resource://gre/modules/devtools/b.js");
requireLazy("devtools/c");
require(someVariable);
`
	if refs := NewScanner(DefaultCallSites()).Scan([]byte(text)); len(refs) != 0 {
		t.Errorf("Scan() = %+v, want no references", refs)
	}
}

func TestScanner_Accessors(t *testing.T) {
	t.Parallel()

	text := `loader.lazyRequireGetter(this, "EventEmitter",
                         "devtools/toolkit/event-emitter", true);
XPCOMUtils.defineLazyModuleGetter(this, "Task", "resource://gre/modules/Task.jsm");
loader.lazyImporter(getGlobal(a, b), "gDevTools", 'resource:///modules/devtools/gDevTools.jsm');
loader.lazyRequireGetter(this, "Missing");
`
	refs := NewScanner(DefaultCallSites()).Scan([]byte(text))
	if len(refs) != 3 {
		t.Fatalf("Scan() found %d references, want 3: %+v", len(refs), refs)
	}

	want := []struct {
		id   string
		kind Kind
		line int
	}{
		{"devtools/toolkit/event-emitter", DependencyRequire, 2},
		{"resource://gre/modules/Task.jsm", LazyImport, 3},
		{"resource:///modules/devtools/gDevTools.jsm", LazyImport, 4},
	}
	for i, w := range want {
		ref := refs[i]
		if ref.RawID != w.id || ref.Kind != w.kind || ref.Line != w.line || !ref.Accessor {
			t.Errorf("refs[%d] = %+v, want id %q kind %s line %d", i, ref, w.id, w.kind, w.line)
		}
		if got := text[ref.ID.Start:ref.ID.End]; got != w.id {
			t.Errorf("refs[%d] ID span covers %q", i, got)
		}
		if text[ref.Site.End-1] != ')' {
			t.Errorf("refs[%d] site does not end at the closing paren", i)
		}
	}
}

func TestScanner_AccessorWithComments(t *testing.T) {
	t.Parallel()

	text := `XPCOMUtils.defineLazyModuleGetter(this, "Foo", // don't, (really)
  "resource://gre/modules/devtools/foo.js" /* it's here */);
loader.lazyRequireGetter(this, /* a, b */ "Bar", 'devtools/shared/bar');
`
	refs := NewScanner(DefaultCallSites()).Scan([]byte(text))
	if len(refs) != 2 {
		t.Fatalf("Scan() found %d references, want 2: %+v", len(refs), refs)
	}
	if refs[0].RawID != "resource://gre/modules/devtools/foo.js" || refs[0].Line != 2 || refs[0].Kind != LazyImport {
		t.Errorf("refs[0] = %+v", refs[0])
	}
	if refs[1].RawID != "devtools/shared/bar" || refs[1].Line != 3 {
		t.Errorf("refs[1] = %+v", refs[1])
	}
	if got := text[refs[0].ID.Start:refs[0].ID.End]; got != refs[0].RawID {
		t.Errorf("ID span covers %q", got)
	}
}

func TestCommentLen(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want int
	}{
		{"// line\nnext", len("// line")},
		{"/* block */ x", len("/* block */")},
		{"/* open", len("/* open")},
		{"/ 2", 0},
		{"x", 0},
	}
	for _, tt := range tests {
		if got := commentLen([]byte(tt.text), 0, len(tt.text)); got != tt.want {
			t.Errorf("commentLen(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestScanner_OrderOfAppearance(t *testing.T) {
	t.Parallel()

	text := "require('b');\nCu.import('a');\nrequire('c');\n"
	refs := NewScanner(DefaultCallSites()).Scan([]byte(text))
	var got []string
	for _, r := range refs {
		got = append(got, r.RawID)
	}
	if len(got) != 3 || got[0] != "b" || got[1] != "a" || got[2] != "c" {
		t.Errorf("Scan() ids = %v, want [b a c]", got)
	}
	if refs[2].Line != 3 {
		t.Errorf("refs[2].Line = %d, want 3", refs[2].Line)
	}
}

func TestScanner_CustomCallSites(t *testing.T) {
	t.Parallel()

	scanner := NewScanner([]CallSite{{Keyword: "ChromeUtils.import", Kind: EagerImport}})
	refs := scanner.Scan([]byte(`ChromeUtils.import("resource://gre/modules/x.jsm"); require("y");`))
	if len(refs) != 1 || refs[0].RawID != "resource://gre/modules/x.jsm" {
		t.Errorf("Scan() = %+v", refs)
	}
}

func TestKind_IsValid(t *testing.T) {
	t.Parallel()

	for _, k := range []Kind{EagerImport, LazyImport, DependencyRequire} {
		if ok, errs := k.IsValid(); !ok {
			t.Errorf("%s.IsValid() = false, %v", k, errs)
		}
	}
	if ok, errs := Kind("eager").IsValid(); ok || len(errs) != 1 {
		t.Errorf("Kind(eager).IsValid() = %v, %v", ok, errs)
	}
	if DependencyRequire.IsImportLike() || !LazyImport.IsImportLike() {
		t.Error("IsImportLike() classification is wrong")
	}
}

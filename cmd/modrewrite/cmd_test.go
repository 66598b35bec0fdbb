// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/modrewrite/modrewrite/internal/config"
)

// staticProvider returns a fixed configuration.
type staticProvider struct {
	cfg *config.Config
	err error
}

func (p staticProvider) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.cfg, nil
}

// newTestApp returns an App on the default configuration writing to buffers.
func newTestApp(t *testing.T) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := NewApp(Dependencies{
		Config: staticProvider{cfg: config.DefaultConfig()},
		Stdout: &stdout,
		Stderr: &stderr,
	})
	return app, &stdout, &stderr
}

func execute(t *testing.T, app *App, args ...string) error {
	t.Helper()
	root := NewRootCommand(app)
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

// projectTree is a small devtools tree with one stale require and one stale import.
func projectTree() map[string]string {
	return map[string]string{
		"devtools/shared/webconsole/moz.build": "EXTRA_JS_MODULES.devtools.toolkit.webconsole += [\n    'utils.js',\n]\n",
		"devtools/client/framework/moz.build":  "EXTRA_JS_MODULES.devtools.framework += [\n    'toolbox.js',\n]\n",
		"devtools/client/framework/toolbox.js": "const utils = require(\"devtools/toolkit/webconsole/utils\");\n",
		"browser/base/content/browser.js":      "Cu.import(\"resource:///modules/devtools/framework/toolbox.js\");\n",
	}
}

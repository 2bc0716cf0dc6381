package config

import (
	"os"

	ferrors "git.home.luguber.info/inful/entrynav/internal/foundation/errors"
)

const exampleConfig = `# entrynav configuration. Every key is optional.

# Entry file globs, evaluated in cwd.
source:
  - "**/*/main.{js,ts}"
cwd: src/modules

# Regex rules for page titles; capture group 1 is the title.
title_rule:
  - 'title:\s*(\S+)'
main_alias: App.vue
title_ext: vue

# vscode, vscode-insiders, webstorm, or a template using
# ${absolute}, ${relative} and ${projectName}.
url_scheme: vscode

base: /
host: vite

# Entries currently being built, in the host's shape.
# entries:
#   foo: src/modules/foo.html

glob:
  ignore:
    - "**/__tests__/**"
  # Hidden files and directories are skipped unless dot is true.
  dot: false
  case_insensitive: false
  follow_symlinks: true

server:
  port: 8090
  metrics: false
open: false
`

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}
	if err := os.WriteFile(configPath, []byte(exampleConfig), 0o600); err != nil {
		return ferrors.FileSystemError("failed to write configuration file").
			WithCause(err).
			WithContext("path", configPath).
			Build()
	}
	return nil
}

// Package embedded provides asset files compiled into the todosweep binary,
// used by init to scaffold project configuration without needing a repo
// checkout.
package embedded

import _ "embed"

// ConfigTemplate is the starter .todosweep/config.yaml written by init.
//
//go:embed config.yaml
var ConfigTemplate []byte

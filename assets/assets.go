package assets

import _ "embed"

// DefaultScene is the scene loaded when the config names no scene file.
//
//go:embed scene.yaml
var DefaultScene []byte

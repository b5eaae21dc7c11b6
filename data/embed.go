// Package data bundles the default card catalog.
package data

import _ "embed"

// DefaultCards is the catalog used when no CARDS_FILE is configured.
//
//go:embed cards.json
var DefaultCards []byte

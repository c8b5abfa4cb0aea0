// Package configs embeds the starter files the installer seeds into the
// runtime directory.
package configs

import "embed"

//go:embed sparrow_facts.txt
var FS embed.FS

// Package ui embeds the page templates and static assets.
package ui

import "embed"

//go:embed gohtml/*.gohtml static/*
var Files embed.FS

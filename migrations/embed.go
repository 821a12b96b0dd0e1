// Package migrations содержит SQL миграции схемы, встраиваемые в бинарник.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

package embedded

import "embed"

//go:embed "views"
var Views embed.FS

//go:embed "migrations"
var ContentMigrations embed.FS

//go:embed "auth/migrations"
var AuthMigrations embed.FS

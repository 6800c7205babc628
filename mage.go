//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	jetContentOutput          = "gen"
	jetAuthOutput             = "auth/gen"
	sqliteContentFileLocation = "content.sqlite"
	sqliteAuthFileLocation    = "auth.sqlite"
	serverBin                 = "./bin/server"
)

func goModDownload() error {
	return sh.Run("go", "mod", "download")
}

// Build builds the server binary.
func Build() error {
	mg.Deps(goModDownload)
	return sh.RunWith(map[string]string{
		"CGO_ENABLED": "1",
	}, "go", "build", "-o", serverBin, "cmd/main.go")
}

// Run starts the server.
func Run() error {
	mg.Deps(Build)
	return sh.Run(serverBin)
}

// GenJet regenerates the typed SQL builders from the sqlite files. Run the
// server once first so the migrations have been applied.
func GenJet() error {
	if err := sh.Run("go", "run", "github.com/go-jet/jet/v2/cmd/jet",
		"-source", "sqlite", "-dsn", sqliteContentFileLocation, "-path", jetContentOutput); err != nil {
		return err
	}
	return sh.Run("go", "run", "github.com/go-jet/jet/v2/cmd/jet",
		"-source", "sqlite", "-dsn", sqliteAuthFileLocation, "-path", jetAuthOutput)
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.Run("golangci-lint", "run", "./...")
}

// Test runs all unit tests.
func Test() error {
	return sh.Run("go", "test", "./...")
}

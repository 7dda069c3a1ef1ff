//go:build mage
// +build mage

package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binary     = "bin/creatorkit"
	wireDir    = "./internal/app"
	swaggerOut = "./cmd/server/docs"
)

// Default target when running mage without arguments.
var Default = Build

// Gen groups code generation targets.
type Gen mg.Namespace

// Test groups test targets.
type Test mg.Namespace

// DB groups database targets.
type DB mg.Namespace

// Build compiles the server after regenerating wire and swagger output.
func Build() error {
	mg.Deps(Gen.All)
	fmt.Println("Building", binary)
	return sh.RunV("go", "build", "-o", binary, "./cmd/server")
}

// Dev builds and runs the server in the foreground.
func Dev() error {
	mg.Deps(Build)
	return sh.RunWithV(map[string]string{"CREATORKIT_LOG_FORMAT": "text", "CREATORKIT_LOG_LEVEL": "debug"}, binary)
}

// All runs wire and swag.
func (Gen) All() {
	mg.Deps(Gen.Wire, Gen.Swagger)
}

// Wire regenerates the dependency injector in internal/app.
func (Gen) Wire() error {
	fmt.Println("Running wire on", wireDir)
	return sh.Run("wire", "gen", wireDir)
}

// Swagger regenerates the OpenAPI docs served at /swagger.
func (Gen) Swagger() error {
	fmt.Println("Generating swagger docs into", swaggerOut)
	return sh.Run("swag", "init",
		"-g", "docs.go",
		"-d", "./cmd/server,./internal/adapter/inbound/gin,./internal/model",
		"-o", swaggerOut,
		"--outputTypes", "go",
	)
}

// Unit runs every test that needs no external services.
func (Test) Unit() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Integration runs the postgres and Redis adapter tests against live services
// named by CREATORKIT_TEST_DATABASE_URL and CREATORKIT_TEST_REDIS_ADDR.
func (Test) Integration() error {
	for _, env := range []string{"CREATORKIT_TEST_DATABASE_URL", "CREATORKIT_TEST_REDIS_ADDR"} {
		if os.Getenv(env) == "" {
			return fmt.Errorf("%s is not set", env)
		}
	}
	return sh.RunV("go", "test", "-race", "-count=1",
		"./internal/adapter/outbound/postgres/...",
		"./internal/adapter/outbound/redis/...",
	)
}

// Cover writes coverage.out and prints the per-function summary.
func (Test) Cover() error {
	if err := sh.RunV("go", "test", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func=coverage.out")
}

// Migrate applies pending schema migrations to the configured database.
func (DB) Migrate() error {
	return sh.RunV("go", "run", "./cmd/migrate")
}

// Lint runs go vet and golangci-lint.
func Lint() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	return sh.RunV("golangci-lint", "run", "./...")
}

// Tidy runs go mod tidy.
func Tidy() error {
	return sh.Run("go", "mod", "tidy")
}

// CI runs the pipeline used on pull requests.
func CI() {
	mg.SerialDeps(Tidy, Gen.All, Lint, Test.Cover)
}

// Clean removes build output, coverage and generated injectors.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out"} {
		if err := os.RemoveAll(path); err != nil {
			return err
		}
	}
	return filepath.WalkDir("internal", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || d.Name() != "wire_gen.go" {
			return err
		}
		fmt.Println("Removing", path)
		return os.Remove(path)
	})
}

// Install installs the generator and lint tools.
func Install() error {
	for _, tool := range []string{
		"github.com/google/wire/cmd/wire@latest",
		"github.com/swaggo/swag/cmd/swag@latest",
		"github.com/golangci/golangci-lint/cmd/golangci-lint@latest",
	} {
		fmt.Println("Installing", tool)
		if err := sh.Run("go", "install", tool); err != nil {
			return fmt.Errorf("install %s: %w", tool, err)
		}
	}
	return nil
}

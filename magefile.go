//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var (
	binDir  = "bin"
	appName = "mahirash-web"
)

var Default = Dev

// Dev runs the server with air when installed, go run otherwise.
func Dev() error {
	mg.Deps(Tidy)
	if _, err := exec.LookPath("air"); err == nil {
		fmt.Println("Starting hot-reload with air ...")
		return sh.RunV("air")
	}
	fmt.Println("air not found, falling back to `go run ./cmd/web`.")
	return Run()
}

func Run() error {
	fmt.Println("Running ./cmd/web ...")
	return sh.RunV("go", "run", "./cmd/web")
}

// Build compiles the server and the tools into bin/.
func Build() error {
	mg.Deps(Tidy)
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return err
	}
	env := map[string]string{"CGO_ENABLED": "0"}
	targets := map[string]string{
		appName:       "./cmd/web",
		"migrate":     "./cmd/tools/migrate",
		"seedcatalog": "./cmd/tools/seedcatalog",
	}
	for name, pkg := range targets {
		out := filepath.Join(binDir, name+exeSuffix())
		fmt.Println("Building:", out)
		if err := sh.RunWithV(env, "go", "build", "-trimpath", "-o", out, pkg); err != nil {
			return err
		}
	}
	return nil
}

func Test() error {
	fmt.Println("Testing...")
	return sh.RunV("go", "test", "./...", "-count=1")
}

func TestRace() error {
	fmt.Println("Testing with -race...")
	return sh.RunV("go", "test", "./...", "-race", "-count=1")
}

func Fmt() error {
	return sh.RunV("gofmt", "-w", "./cmd", "./internal", "./pkg", "./magefile.go")
}

func Lint() error {
	if _, err := exec.LookPath("golangci-lint"); err != nil {
		return fmt.Errorf("golangci-lint not found")
	}
	return sh.RunV("golangci-lint", "run", "--timeout=3m", "./...")
}

func Check() error {
	mg.Deps(Fmt, Lint, Test)
	fmt.Println("Check OK.")
	return nil
}

func Tidy() error {
	return sh.RunV("go", "mod", "tidy")
}

func Clean() error {
	return os.RemoveAll(binDir)
}

// Migrate creates or updates the MySQL tables.
func Migrate() error {
	return sh.RunV("go", "run", "./cmd/tools/migrate")
}

// Seed uploads a product file to the configured catalog, e.g.
// SEED_FILE=products.json mage seed.
func Seed() error {
	file := os.Getenv("SEED_FILE")
	if file == "" {
		file = "products.json"
	}
	return sh.RunV("go", "run", "./cmd/tools/seedcatalog", "-file", file)
}

func exeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}

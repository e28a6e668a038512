//go:build ignore

// build.go - Active Listings Analyzer build system
// Usage: go run build.go [-target=TARGET] [-v]
// Targets: build, test, clean, release

package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

const (
	module  = "github.com/Yachtguy502/Analyze-Active-Listings"
	binName = "listings"
	mainPkg = "./cmd/listings"
)

// BuildContext holds configuration for the build process
type BuildContext struct {
	Verbose bool
	GOOS    string
	GOARCH  string
}

var (
	distDir = "dist"

	// release matrix
	releaseTargets = [][2]string{
		{"linux", "amd64"},
		{"linux", "arm64"},
		{"darwin", "arm64"},
		{"windows", "amd64"},
	}

	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
	colorYellow = "\033[33m"
)

func main() {
	target := flag.String("target", "build", "Build target")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	printHeader()
	startTime := time.Now()

	ctx := &BuildContext{Verbose: *verbose, GOOS: runtime.GOOS, GOARCH: runtime.GOARCH}

	var err error
	switch *target {
	case "build":
		err = buildBinary(ctx)
	case "test":
		err = runTests(ctx)
	case "clean":
		err = clean(ctx)
	case "release":
		err = buildRelease(ctx)
	default:
		showHelp()
		os.Exit(1)
	}
	if err != nil {
		printError(err.Error())
		os.Exit(1)
	}

	printSuccess(fmt.Sprintf("Build completed in %s", time.Since(startTime).Round(time.Millisecond)))
}

func printHeader() {
	fmt.Println(colorCyan + "===========================================" + colorReset)
	fmt.Println(colorCyan + "  Active Listings Analyzer - Build System  " + colorReset)
	fmt.Println(colorCyan + "===========================================" + colorReset)
	fmt.Println()
}

func printInfo(msg string) {
	fmt.Printf("%s[INFO]%s %s\n", colorBlue, colorReset, msg)
}

func printSuccess(msg string) {
	fmt.Printf("%s[SUCCESS]%s %s\n", colorGreen, colorReset, msg)
}

func printError(msg string) {
	fmt.Printf("%s[ERROR]%s %s\n", colorRed, colorReset, msg)
}

func printWarning(msg string) {
	fmt.Printf("%s[WARNING]%s %s\n", colorYellow, colorReset, msg)
}

// ldflags stamps build time and commit into pkg/contracts
func ldflags() string {
	commit := "unknown"
	if out, err := exec.Command("git", "rev-parse", "--short", "HEAD").Output(); err == nil {
		commit = strings.TrimSpace(string(out))
	} else {
		printWarning("git not available, commit will be reported as unknown")
	}
	return fmt.Sprintf("-s -w -X %s/pkg/contracts.BuildTime=%s -X %s/pkg/contracts.GitCommit=%s",
		module, time.Now().UTC().Format(time.RFC3339), module, commit)
}

func binaryName(goos, goarch string, suffixed bool) string {
	name := binName
	if suffixed {
		name = fmt.Sprintf("%s-%s-%s", binName, goos, goarch)
	}
	if goos == "windows" {
		name += ".exe"
	}
	return name
}

func buildFor(ctx *BuildContext, output string) error {
	args := []string{"build", "-trimpath", "-ldflags", ldflags(), "-o", output, mainPkg}
	if ctx.Verbose {
		args = append([]string{"build", "-v"}, args[1:]...)
		fmt.Printf("Running: go %s\n", strings.Join(args, " "))
	}

	cmd := exec.Command("go", args...)
	cmd.Env = append(os.Environ(), "CGO_ENABLED=0", "GOOS="+ctx.GOOS, "GOARCH="+ctx.GOARCH)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to build %s: %w", output, err)
	}

	if info, err := os.Stat(output); err == nil {
		sizeMB := float64(info.Size()) / 1024 / 1024
		printSuccess(fmt.Sprintf("Built %s (%.1f MB)", output, sizeMB))
	}
	return nil
}

func buildBinary(ctx *BuildContext) error {
	printInfo(fmt.Sprintf("Building %s for %s/%s...", binName, ctx.GOOS, ctx.GOARCH))
	if err := os.MkdirAll(distDir, 0755); err != nil {
		return err
	}
	return buildFor(ctx, filepath.Join(distDir, binaryName(ctx.GOOS, ctx.GOARCH, false)))
}

func runTests(ctx *BuildContext) error {
	printInfo("Running Go tests...")
	args := []string{"test", "-race"}
	if ctx.Verbose {
		args = append(args, "-v")
	}
	args = append(args, "./...")

	cmd := exec.Command("go", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("go tests failed: %w", err)
	}
	printSuccess("All tests passed")
	return nil
}

func clean(ctx *BuildContext) error {
	printInfo("Cleaning build artifacts...")
	if err := os.RemoveAll(distDir); err != nil {
		return fmt.Errorf("failed to remove %s: %w", distDir, err)
	}
	if ctx.Verbose {
		fmt.Printf("Removed %s\n", distDir)
	}
	return nil
}

func buildRelease(ctx *BuildContext) error {
	printInfo("Building release binaries...")
	if err := clean(ctx); err != nil {
		return err
	}
	if err := os.MkdirAll(distDir, 0755); err != nil {
		return err
	}

	for _, t := range releaseTargets {
		target := &BuildContext{Verbose: ctx.Verbose, GOOS: t[0], GOARCH: t[1]}
		if err := buildFor(target, filepath.Join(distDir, binaryName(t[0], t[1], true))); err != nil {
			return err
		}
	}

	versionFile := filepath.Join(distDir, "BUILD.txt")
	content := fmt.Sprintf("Active Listings Analyzer\nBuilt: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	if err := os.WriteFile(versionFile, []byte(content), 0644); err != nil {
		return err
	}

	printSuccess("Release build completed")
	return nil
}

func showHelp() {
	fmt.Println("Usage: go run build.go [-target=TARGET] [-v]")
	fmt.Println()
	fmt.Println("Targets:")
	fmt.Println("  build    Build the listings binary for this platform into dist/")
	fmt.Println("  test     Run all Go tests with the race detector")
	fmt.Println("  clean    Remove dist/")
	fmt.Println("  release  Cross-compile release binaries into dist/")
}

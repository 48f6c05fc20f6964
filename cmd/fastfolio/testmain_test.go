package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/joho/godotenv"
	"go.uber.org/goleak"
)

// TestMain runs before all tests and loads .env if available
func TestMain(m *testing.M) {
	// Try to load .env file - ignore error if it doesn't exist (CI environment)
	_ = godotenv.Load()

	goleak.VerifyTestMain(m)
}

// execute runs the root command in-process with fresh flag values
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	configPath, verbose = "", false
	servePort = 0
	generateProfileFile, generateMode, generateOutputFile = "", "portfolio", ""
	extractProfileFile = ""

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err = rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

//go:build ignore

// This script generates secure random secrets for a deployment.
// Run with: go run scripts/generate_secrets.go
package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
)

func generateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(bytes), nil
}

func main() {
	fmt.Println("=== Translator Service Secret Generator ===")
	fmt.Println()

	adminPassword, err := generateSecureKey(18)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating admin password: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Add this to your .env file:")
	fmt.Println()
	fmt.Printf("TRANSLATOR_ADMIN_PASSWORD=%s\n", adminPassword)
}

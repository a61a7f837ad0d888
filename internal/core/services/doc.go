// Package services implements the core business logic.
// Services depend only on domain types and port interfaces.
package services

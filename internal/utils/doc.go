// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes an injectable clock, UUID generation, keyed hashing for log
// redaction, and reset token signing and verification.
package utils

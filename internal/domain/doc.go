// Package domain holds the types shared by the email classification pipeline:
// rule definitions, verdicts, suggested responses and input errors.
package domain

// Package provider defines the AI provider interface and implementations.
package provider

import "github.com/ZaguanLabs/framelai"

// Provider is the interface for AI backends.
// This is an alias to the main package interface for convenience.
type Provider = framelai.Provider

// TranslateRequest is an alias to the main package type.
type TranslateRequest = framelai.TranslateRequest

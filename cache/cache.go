// Package cache provides translation caching implementations.
package cache

import "github.com/ZaguanLabs/framelai"

// TranslationCache is the interface for translation caching.
// This is an alias to the main package interface for convenience.
type TranslationCache = framelai.TranslationCache

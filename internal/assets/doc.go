// Package assets resolves the builder's variant templates, page shell,
// broker directory and image assets. Embedded defaults ship with the
// binary; a custom asset directory, when configured, takes precedence
// with fallback to the embedded versions.
package assets

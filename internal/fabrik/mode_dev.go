//go:build dev

package fabrik

// BuildMode is the asset mode selected at build time.
const BuildMode = ModeDevelopment

// Package template defines the template engine seam used by page renderers.
// The gotemplate subpackage provides a pongo2-backed implementation.
package template

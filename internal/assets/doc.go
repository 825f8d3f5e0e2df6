// Package assets provides the CSS stylesheets bundled into EPUB output.
//
// Styles are embedded at compile time under styles/{name}.css and looked up
// by name. ResolveStyle also accepts a path to a CSS file on disk, so users
// can bring their own stylesheet without a separate flag.
//
// # Security
//
// Style names are validated to prevent path traversal into the embedded
// filesystem: a name never contains separators or dots.
package assets

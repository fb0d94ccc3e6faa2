// Package export turns an editor document into a static website bundle.
//
// [Render] is a pure function from a [editor.Snapshot] to a [Bundle] of three
// text files: index.html, styles.css and script.js. [WriteZip] packages a
// bundle into a single archive. [Exporter] combines both with an artifact
// cache so repeated exports of an unchanged document are served from cache.
//
// # Markup Rules
//
// Each element becomes one absolutely positioned node, in paint order:
//
//   - text: a div holding the escaped text
//   - image: an img whose src is copied verbatim, object-fit cover
//   - rectangle: an empty div with the rectangle class
//   - button: a button holding the escaped label, "Button" when empty
//
// Escaping replaces &, < and > only, and applies to text content only.
package export

// Package io provides JSON import and export of page designs.
//
// A design file is the offline form of an editor document: the CLI's `new`,
// `edit` and `export` commands read and write it. The server never persists
// documents.
//
// # JSON Format
//
//	{
//	  "version": 1,
//	  "elements": [
//	    {"id": "el_3f…", "type": "text", "x": 40, "y": 40, "w": 224, "h": 40,
//	     "text": "Landing headline", "style": {"fontSize": 24, "color": "#0b1220"}}
//	  ]
//	}
//
// Elements are listed in paint order. "type" is one of text, image,
// rectangle or button. A missing version is read as version 1.
//
// # Import
//
// [ReadJSON] and [ImportJSON] decode a design and rebuild the document
// through [editor.FromSnapshot], so geometry is re-snapped to the grid and
// duplicate ids or unknown kinds are rejected.
//
// # Export
//
// [WriteJSON] and [ExportJSON] write the indented form. Importing an
// exported design yields an identical snapshot.
package io

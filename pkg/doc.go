// Package pkg provides the core libraries for the Pagecraft page builder.
//
// # Overview
//
// Pagecraft places text, images, rectangles and buttons on a fixed 1200×800
// canvas where every position and size sits on an 8px grid, and exports the
// result as a static HTML/CSS/JS site. The pkg directory is organized into
// three areas:
//
//  1. Editor core - [geom], [editor] and [export]
//  2. Accounts - [auth], [session] and [storage]
//  3. Infrastructure - [cache], [io], [errors], [observability] and [buildinfo]
//
// # Architecture
//
// The flow of an editing session:
//
//	pointer / keyboard input
//	         ↓
//	    [editor] Engine and Controller (drag, resize, z-order, edits)
//	         ↓
//	    [editor] Document (ordered elements + selection)
//	         ↓
//	    [export] Exporter (render → zip, cached by content hash)
//	         ↓
//	    design-export.zip (index.html, styles.css, script.js)
//
// # Quick Start
//
// Build a page and export it:
//
//	doc := editor.NewDefault()
//	btn, _ := doc.Add(editor.KindButton)
//	doc.UpdateText(btn.ID, "Sign up")
//
//	engine := editor.NewEngine(doc)
//	engine.PointerDown(editor.PointerEvent{Target: btn.ID, X: 70, Y: 70})
//	engine.PointerMove(editor.PointerEvent{X: 610, Y: 430})
//	engine.PointerUp(editor.PointerEvent{})
//
//	archive, err := export.NewExporter(nil, nil, nil).Export(ctx, doc.Snapshot())
//
// # Main Packages
//
// [geom] - Grid snapping, minimum sizes, canvas bounds and element ids.
//
// [editor] - The element document, the pointer interaction engine with
// alignment guides, and the selection controller.
//
// [export] - Static site rendering and zip packaging.
//
// [auth] - Registration and login with bcrypt password hashes. Access tokens
// come from [session], which signs HS256 JWTs carried in the accessToken
// cookie. Accounts live in a [storage] UserStore (MongoDB or memory).
//
// [cache] - Artifact caches (null, file, Redis) with key derivation and
// retry helpers.
//
// [io] - The JSON design file format.
//
// [observability] - No-op-by-default hooks for export, auth, cache and HTTP
// events.
//
// # Testing
//
//	go test ./pkg/...
//	go test ./pkg/editor -run Engine
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/pagecraft/pkg/geom
// [editor]: https://pkg.go.dev/github.com/matzehuels/pagecraft/pkg/editor
// [export]: https://pkg.go.dev/github.com/matzehuels/pagecraft/pkg/export
// [auth]: https://pkg.go.dev/github.com/matzehuels/pagecraft/pkg/auth
// [session]: https://pkg.go.dev/github.com/matzehuels/pagecraft/pkg/session
// [storage]: https://pkg.go.dev/github.com/matzehuels/pagecraft/pkg/storage
// [cache]: https://pkg.go.dev/github.com/matzehuels/pagecraft/pkg/cache
// [io]: https://pkg.go.dev/github.com/matzehuels/pagecraft/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/pagecraft/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/pagecraft/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/pagecraft/pkg/buildinfo
package pkg

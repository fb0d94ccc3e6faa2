// Package server exposes the editor and account operations over HTTP.
//
// # Routes
//
//	POST   /api/auth/register            create account, set cookie
//	POST   /api/auth/login               log in, set cookie
//	POST   /api/auth/logout              clear cookie
//	GET    /api/auth/me                  current user
//
//	GET    /api/editor/document          workspace state
//	POST   /api/editor/elements          add element {kind}
//	PATCH  /api/editor/elements/{id}     edit text, src, style, w, h
//	DELETE /api/editor/elements/{id}     delete element
//	POST   /api/editor/elements/{id}/forward
//	POST   /api/editor/elements/{id}/backward
//	POST   /api/editor/pointer/down      pointer events
//	POST   /api/editor/pointer/move
//	POST   /api/editor/pointer/up
//	GET    /api/editor/export            design-export.zip
//
//	GET    /healthz
//
// Editor routes require the accessToken cookie. Every authenticated request
// re-issues the cookie, so a session expires a full token lifetime after the
// last request.
//
// # Workspaces
//
// Each user gets one in-memory workspace, created on first access with the
// default headline element. Requests against a workspace are serialized by
// its mutex. Workspaces are lost when the process exits.
package server

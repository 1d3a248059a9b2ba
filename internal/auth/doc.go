// Package auth provides the authentication plumbing around the catalog
// service: bcrypt password hashing (the catalog.Credentials implementation),
// cookie sessions persisted in SQLite, the Gin middleware that gates catalog
// routes, and CSRF protection for browser clients.
//
// The catalog service owns the authoritative login state; this package only
// maps HTTP requests onto it and keeps the browser's cookie in step.
package auth

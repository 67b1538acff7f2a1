// Package errs defines the error envelope returned to API clients.
//
// Every error that leaves a handler or middleware is translated into an
// HTTPError by the global error handler, so clients always receive the
// same JSON shape:
//
//	{"code":"BAD_REQUEST","message":"...","status":400,"override":true,"errors":[...],"action":null}
package errs

// Package validation contains the logic for validating
// request data.
//
// It keeps the process-wide schema registry: named, reusable JSON
// Schema documents that routes reference by id, compiled with
// santhosh-tekuri/jsonschema. Body
// validation runs as route middleware, before pre-handler hooks and
// the handler, and converts failures into field errors the client
// can understand.
package validation

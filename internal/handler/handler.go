// Package handler is the first layer after the router.
//
// It binds requests, calls the service layer and writes responses.
// Body validation happens earlier, in route middleware, so handlers
// only ever see bodies that passed their route's schema.
package handler

// Package service contains the business logic.
//
// It sits below the handler layer: handlers pass it bound request
// data and it returns the values handlers write back.
package service

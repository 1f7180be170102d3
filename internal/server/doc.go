// Package server implements the flowd HTTP API
//
// This package exposes a flow registry over REST endpoints and streams its
// transitions to WebSocket clients. Requests are serialized before they reach
// the registry
package server

// Package api defines the HTTP and WebSocket message types exchanged with the
// flowd service
package api

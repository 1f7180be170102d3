// Package util provides small generic data structures shared by the registry
// and the flowd service
package util

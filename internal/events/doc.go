// Package events publishes flow registry transitions onto a caravan topic so
// that observers outside the registry's call stack can follow them
package events

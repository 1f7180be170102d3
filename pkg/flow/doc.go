// Package flow implements the flow registry: a process-local record of
// in-flight interactions whose initiators expect a result back
//
// Each flow name maps to a stack of instances so the same flow may be
// re-entered before it completes. An instance holds its pending result and a
// resolution target, either a history URL or a callback. Interceptors observe
// every ENABLE, DISABLE and BACK transition and may veto it
//
// A Registry is synchronous and performs no locking. Callers that share one
// across goroutines must serialize access themselves
package flow

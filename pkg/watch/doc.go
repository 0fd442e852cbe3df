// Package watch re-runs a callback whenever dataset files in a directory
// change. Bursts of filesystem events are coalesced with a debounce delay.
package watch

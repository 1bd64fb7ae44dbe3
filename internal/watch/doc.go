// Package watch reports changes to a set of files.
//
// Each file's directory is watched rather than the file itself, so editors
// that save by writing a temporary file and renaming it over the original are
// still seen. Bursts of events are coalesced into one callback per debounce
// window.
package watch

// Package docs rewrites the tracked documentation files of a project.
//
// An update carries three things: a list of changes, a one-line status, and
// a list of next steps. In the AI instructions file they replace the whole
// block under the configured update section header. The changelog only gets
// targeted edits to its "Last Updated" line and its three labelled lists,
// so hand-written content around them is preserved.
package docs

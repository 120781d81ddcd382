// Package htmlform adapts an HTML markup tree to the form capability
// interfaces. It is the reference host-environment adapter: the form root
// is marked with data-scribe-form, subtrees are excluded with
// data-scribe-ignore, and custom listbox widgets carry their options and
// value as JSON-encoded data attributes.
//
// Write-back mutates the parsed tree, so a re-extraction over the same
// document observes previously written values.
package htmlform

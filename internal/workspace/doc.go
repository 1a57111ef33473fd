// Package workspace manages the directory the benchmarked project is checked out
// into. The directory is persistent: it survives runs so that a later run with
// --skip-checkout can rebuild the same tree.
package workspace

// Package git wraps go-git for the two things versobench needs from version
// control: checking out the benchmarked project at an exact revision, and listing
// the files tracked by the target repository.
package git

// Package registry finds and installs public skills.
//
// Search shells out to the skills directory CLI ("npx skills find" by
// default) and turns its human-oriented output into [Result] values; that
// output format is not a stable interface, so [ParseSearchOutput] is the only
// place that knows about it.
//
// Install clones the owning repository into a scratch directory, locates the
// skill inside it with [Resolve] and hands the directory to the skill
// repository, which replaces the local copy and creates the discovery link.
package registry

// Package release models a pending release: the bump kind and note declared
// in a release-marker file, and the version arithmetic that turns the current
// version into the next one.
//
// A release-marker file looks like:
//
//	RELEASE_TYPE: minor
//
//	Adds support for custom key bindings.
//
// The first line selects which version component to increment; the rest is
// free-form note text that ends up in the changelog.
package release

// Package assert holds contract checks for programming errors.
// Checks are active only in binaries built with the "lrudebug" tag;
// otherwise That compiles to a constant-false branch and is dropped.
package assert

// That panics with msg when cond is false and assertions are enabled.
func That(cond bool, msg string) {
	if Enabled && !cond {
		panic("assert: " + msg)
	}
}

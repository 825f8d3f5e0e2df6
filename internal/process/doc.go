// Package process runs external converters so that cancelling the
// context also stops every helper they spawned.
package process

// Package topics maps topic strings to message kinds.
//
// Kinds are contributed by providers registered under the fedora.messages
// extension point. Resolution walks providers in registration order and
// returns the first kind whose topic matches, or the generic fallback kind
// when none does. An unknown topic is never an error; a provider that fails
// to build its kind is.
package topics

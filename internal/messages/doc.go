// Package messages defines the contract shared by every message kind and the
// message envelope that carries a body on the bus.
//
// A Kind pairs a topic with a body schema and the functions that render a
// body for people. Kinds owned by an application also implement AppKind.
// Topics that no provider recognises resolve to Generic, which has no schema
// and no application identity.
package messages

// Package scene builds the shapes, lights, and environment settings of a
// Mirage world and assembles them into one ordered [Document].
//
// All entities of one compilation live in a [Session]. Commands are applied
// to the session in order (phase 1), attachments are linked once by
// [Session.ResolveAttachments] (phase 2), and [Session.Assemble] serializes
// the result (phase 3).
//
// # Validation
//
// Shapes and lights validate every attribute against a fixed allow-list and
// fail on unknown keys. Environment containers (background, shadows, physics)
// log unknown keys and ignore them.
//
// # Serialization
//
// A shape is serialized at most once; the first result is cached and returned
// on every later reference, even if the shape changes afterwards. An empty
// placeholder is cached before the shape's template and attachments are
// visited, so cyclic references terminate.
package scene

// Package script reads world scripts and compiles them into world documents.
//
// # Syntax
//
// A script is a sequence of statements. Blocks hold "key: value" entries
// separated by newlines, semicolons, or commas. Comments start with "#" (outside
// of values), "//", or "/*".
//
//	var w = 10
//
//	define post { type: cylinder; scale: [1, 1, w]; material: Grey }
//	shape gate : post { location: [w/2, 0, 0] }
//	shape { type: sphere; location: [0, 0, 2]; attachto: gate }
//
//	light sun { location: [0, 0, 500]; color: #ffffe0 }
//	background { color: #000020 }
//
//	pendown
//	penwidth 0.5
//	forward 20
//	turn 90
//	forward 20
//
// Values are vectors ("[x, y, z]"), colors ("#rrggbb"), quoted strings, or
// bare text. Bare text is an expression when the attribute is numeric, a word
// when it is textual, and true or false when it is boolean. Expressions may
// refer to any variable declared earlier with "var".
//
// # Compilation
//
// [Compile] applies every statement in order, resolves attachments once every
// statement has been applied, and then assembles the world document. Any error
// aborts compilation without a document.
package script

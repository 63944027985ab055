// Package expr evaluates the arithmetic and comparison expressions that appear
// in world scripts.
//
// Source text is split into [Token] values by [Tokenize]. Identifiers are
// substituted from a [Context], the infix sequence is reordered into postfix
// by the shunting-yard algorithm ([Postfix]), and the postfix queue is reduced
// on a value stack.
//
// # Operators
//
// From lowest to highest precedence:
//
//	==              none   (tolerance 0.001, yields 1 or 0)
//	<  >            left   (yields 1 or 0)
//	sin cos tan     right  (unary functions)
//	sqrt abs deg2rad
//	+  -            left
//	*  /  %         left   (% is floored modulo)
//	^               right
//	-  (negation)   right
//
// A "-" is negation when it starts the expression or follows "(" or another
// operator.
//
// # Errors
//
// Every failure is returned as an error matching [ErrEval]; nothing panics.
package expr

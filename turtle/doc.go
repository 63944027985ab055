// Package turtle implements a turtle-graphics cursor that emits scene shapes
// as it moves.
//
// The turtle starts at the origin facing the +X axis with its pen up. While
// the pen is down, [Turtle.Forward] and [Turtle.Up] emit one shape spanning
// the distance travelled, shaped and colored by the current pen.
package turtle

// Package formula parses and evaluates the arithmetic expressions used to
// combine integrated range columns.
//
// Integer literals are 1-based references to columns: in "1/(2+3)" the
// value of the first column is divided by the sum of the second and third.
// Literals with a decimal point or exponent ("0.5", "2.", "1e3") are plain
// constants. Supported operators, loosest binding first:
//
//	+ -        addition, subtraction
//	* /        multiplication, division
//	unary + -  sign
//	**         exponentiation (right associative, binds tighter than a
//	           sign on its left: -2**2 is -4)
//
// Parentheses group. Arithmetic follows IEEE 754, so division by zero gives
// ±Inf or NaN rather than an error.
package formula

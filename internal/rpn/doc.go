// Package rpn evaluates reverse Polish notation expressions over
// unified reals.
//
// Tokens are separated by whitespace. Numbers are decimal ("2", "-0.5")
// or fractions ("22/7") and are read exactly. The constants are pi (or π)
// and e. Binary operators are + - * / ^; unary functions are neg, inv,
// sqrt (or √), ln, log, exp, sin, cos, tan, asin, acos, atan and the
// postfix factorial !. dup and swap rearrange the stack.
//
//	rpn.Eval(ctx, "2 sqrt dup *")   // exactly 2
//	rpn.Eval(ctx, "1 3 / pi *")     // (1/3)π
//
// Input is NFKC-normalized, and the typographic operators − × ÷ · are
// accepted for - * / *.
package rpn

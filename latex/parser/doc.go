// Package parser rewrites the file references in LaTeX token streams.
//
// The parser copies its input to the output, token by token.  Control
// sequences which are defined in the current Environment are handed
// to their Macro, which reads the macro arguments and decides what to
// emit.  Built-in macros like \input or \includegraphics call back into
// an Engine to read included files and to rename resources; user
// macros defined by \def are only expanded if their body includes
// other files.
package parser

// Package tokenizer converts LaTeX text input into a stream of tokens.
//
// Every input character is classified by a SymbolTable, in the same
// way as TeX's category codes.  Tokens keep their original text and
// position, so that concatenating the texts of all tokens of an
// input reproduces the input exactly.
package tokenizer

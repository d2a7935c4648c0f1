// ADN reader (lexer and parser for a small Lisp-style data notation)
//
// the reader operates on an already decoded sequence of unicode code points.
// malformed input never aborts a read: faults are attached as data to the
// token or element where they occurred and sibling forms keep parsing.
//
// examples:
//
//   (define point {x 1 y -2.5})
//   [\a \🍆 "tab\there" 'quoted #dispatch `back] ; trailing comment
//
// BNF:
//  <form>            :: <prefix>* ( <atom> | <list> | <vector> | <map> ) | <comment> ;
//
//  <prefix>          :: "#" | "'" | "`" ;
//
//  <list>            :: "(" <form>* ")" ;
//  <vector>          :: "[" <form>* "]" ;
//  <map>             :: "{" ( <form> <form> )* "}" ;
//
//  <atom>            :: <integer> | <float> | <char> | <string> | <identifier> ;
//
//  <integer>         :: <sign>? <decimal-digit>+ ;
//  <float>           :: <sign>? <decimal-digit>* "." <decimal-digit>+ ;
//  <sign>            :: "+" | "-" ;
//  <decimal-digit>   :: "0" | ... | "9" ;
//
//  <char>            :: "\\" <any code point> ;
//
//  <string>          :: "\"" ( <string-char> | <string-escape> )* "\"" ;
//  <string-escape>   :: "\\" <any code point> ;   ; \n \r \t decode, others pass through
//
//  <comment>         :: ";" <any code point except newline>* ;
//
//  <identifier>      :: <any code point except delimiters>+ ;   ; not matching the above
//
//  <delimiter>       :: <whitespace> | "(" | ")" | "[" | "]" | "{" | "}" | "#" ;
//  <whitespace>      :: U+0000..U+0020 | "," | U+0085 | U+00A0 | U+1680
//                     | U+2000..U+200A | U+2028 | U+2029 | U+202F | U+205F
//                     | U+3000 | U+FEFF ;

package adn

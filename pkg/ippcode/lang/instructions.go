// File: instructions.go
// Title: IPPcode18 Instruction Table
// Description: The operation names of IPPcode18 and the ordered operand
//              kinds each of them expects.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19

package lang

// IPPcode18 dialect constants
const (
	IPPcode18Header        = ".IPPcode18"
	IPPcode18CommentMarker = "#"
	IPPcode18Language      = "IPPcode18"
)

var (
	noArgs      = []ArgKind{}
	varOnly     = []ArgKind{ArgVariable}
	symbOnly    = []ArgKind{ArgSymbol}
	labelOnly   = []ArgKind{ArgLabel}
	varSymb     = []ArgKind{ArgVariable, ArgSymbol}
	varSymbSymb = []ArgKind{ArgVariable, ArgSymbol, ArgSymbol}
	jumpIf      = []ArgKind{ArgLabel, ArgSymbol, ArgSymbol}
)

// ippcode18Instructions lists every operation in table order
var ippcode18Instructions = []Instruction{
	// Frames and function calls
	{"MOVE", varSymb},
	{"CREATEFRAME", noArgs},
	{"PUSHFRAME", noArgs},
	{"POPFRAME", noArgs},
	{"DEFVAR", varOnly},
	{"CALL", labelOnly},
	{"RETURN", noArgs},

	// Data stack
	{"PUSHS", symbOnly},
	{"POPS", varOnly},

	// Arithmetic, relational, boolean and conversion
	{"ADD", varSymbSymb},
	{"SUB", varSymbSymb},
	{"MUL", varSymbSymb},
	{"IDIV", varSymbSymb},
	{"LT", varSymbSymb},
	{"GT", varSymbSymb},
	{"EQ", varSymbSymb},
	{"AND", varSymbSymb},
	{"OR", varSymbSymb},
	{"NOT", varSymb},
	{"INT2CHAR", varSymb},
	{"STRI2INT", varSymbSymb},

	// Input and output
	{"READ", []ArgKind{ArgVariable, ArgType}},
	{"WRITE", symbOnly},

	// Strings
	{"CONCAT", varSymbSymb},
	{"STRLEN", varSymb},
	{"GETCHAR", varSymbSymb},
	{"SETCHAR", varSymbSymb},

	// Types
	{"TYPE", varSymb},

	// Control flow
	{"LABEL", labelOnly},
	{"JUMP", labelOnly},
	{"JUMPIFEQ", jumpIf},
	{"JUMPIFNEQ", jumpIf},

	// Debugging
	{"DPRINT", symbOnly},
	{"BREAK", noArgs},
}

package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedChar         Code = 1003
	LexUnterminatedBlockComment Code = 1004
	LexBadNumber                Code = 1005
	LexTokenTooLong             Code = 1006

	// Declarations
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnbalancedScope    Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectSemicolon    Code = 2004
	SynExpectBody         Code = 2005
	SynUnclosedAttribute  Code = 2006
	SynDanglingAttribute  Code = 2007
	SynEnumExpectEntry    Code = 2008
	SynExpectParamList    Code = 2009
	SynMalformedDecl      Code = 2010
	SynExpectTypedefAlias Code = 2011
	SynTooManyErrors      Code = 2012

	// I/O
	IOLoadFileError Code = 4001
	IOWalkDirError  Code = 4002

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedChar:         "Unterminated character literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed numeric literal",
	LexTokenTooLong:             "Token too long",
	SynInfo:                     "Declaration information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnbalancedScope:          "Unbalanced scope",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectSemicolon:          "Expected ';'",
	SynExpectBody:               "Expected '{'",
	SynUnclosedAttribute:        "Unclosed attribute",
	SynDanglingAttribute:        "Attribute without declaration",
	SynEnumExpectEntry:          "Expected enum entry",
	SynExpectParamList:          "Expected parameter list",
	SynMalformedDecl:            "Malformed declaration",
	SynExpectTypedefAlias:       "Expected typedef alias name",
	SynTooManyErrors:            "Too many errors",
	IOLoadFileError:             "I/O load file error",
	IOWalkDirError:              "I/O directory walk error",
	ObsInfo:                     "Observability information",
	ObsTimings:                  "Scan timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

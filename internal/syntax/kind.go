// Package syntax provides a lexer and parser for SourcePawn variable
// declarations that produces an immutable syntax tree.
package syntax

// Kind classifies a syntax tree node.
type Kind int

const (
	// KindInvalid is the zero Kind and never appears in a parsed tree.
	KindInvalid Kind = iota

	// Structure.
	KindSourceFile
	KindBlock
	KindComment

	// Declarations.
	KindGlobalVariableDeclaration
	KindOldGlobalVariableDeclaration
	KindVariableDeclarationStatement
	KindOldVariableDeclarationStatement
	KindVariableDeclaration
	KindOldVariableDeclaration
	KindType
	KindOldType
	KindVariableStorageClass
	KindVariableVisibility
	KindSymbol
	KindDimension
	KindFixedDimension
	KindDynamicArray

	// Keyword and separator tokens.
	KindConst
	KindStatic
	KindNew
	KindDecl
	KindComma
	KindSemicolon
	KindAssign
	KindLBracket
	KindRBracket
	KindLBrace
	KindRBrace
	KindLParen
	KindRParen
	KindOperator
	KindPunctuation

	// Expressions.
	KindIntLiteral
	KindFloatLiteral
	KindCharLiteral
	KindStringLiteral
	KindBoolLiteral
	KindNull
	KindThis
	KindBinaryExpression
	KindUnaryExpression
	KindParenthesizedExpression
	KindCallExpression
	KindArgumentList
	KindArrayIndexedAccess
	KindFieldAccess
	KindArrayLiteral
	KindTernaryExpression
	KindViewAs

	numKinds
)

// kindNames follows the tree-sitter-sourcepawn node names so diagnostics
// read the same as in other SourcePawn tooling.
var kindNames = [numKinds]string{
	KindInvalid:                         "invalid",
	KindSourceFile:                      "source_file",
	KindBlock:                           "block",
	KindComment:                         "comment",
	KindGlobalVariableDeclaration:       "global_variable_declaration",
	KindOldGlobalVariableDeclaration:    "old_global_variable_declaration",
	KindVariableDeclarationStatement:    "variable_declaration_statement",
	KindOldVariableDeclarationStatement: "old_variable_declaration_statement",
	KindVariableDeclaration:             "variable_declaration",
	KindOldVariableDeclaration:          "old_variable_declaration",
	KindType:                            "type",
	KindOldType:                         "old_type",
	KindVariableStorageClass:            "variable_storage_class",
	KindVariableVisibility:              "variable_visibility",
	KindSymbol:                          "symbol",
	KindDimension:                       "dimension",
	KindFixedDimension:                  "fixed_dimension",
	KindDynamicArray:                    "dynamic_array",
	KindConst:                           "const",
	KindStatic:                          "static",
	KindNew:                             "new",
	KindDecl:                            "decl",
	KindComma:                           ",",
	KindSemicolon:                       ";",
	KindAssign:                          "=",
	KindLBracket:                        "[",
	KindRBracket:                        "]",
	KindLBrace:                          "{",
	KindRBrace:                          "}",
	KindLParen:                          "(",
	KindRParen:                          ")",
	KindOperator:                        "operator",
	KindPunctuation:                     "punctuation",
	KindIntLiteral:                      "int_literal",
	KindFloatLiteral:                    "float_literal",
	KindCharLiteral:                     "char_literal",
	KindStringLiteral:                   "string_literal",
	KindBoolLiteral:                     "bool_literal",
	KindNull:                            "null",
	KindThis:                            "this",
	KindBinaryExpression:                "binary_expression",
	KindUnaryExpression:                 "unary_expression",
	KindParenthesizedExpression:         "parenthesized_expression",
	KindCallExpression:                  "call_expression",
	KindArgumentList:                    "argument_list",
	KindArrayIndexedAccess:              "array_indexed_access",
	KindFieldAccess:                     "field_access",
	KindArrayLiteral:                    "array_literal",
	KindTernaryExpression:               "ternary_expression",
	KindViewAs:                          "view_as",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "Kind(?)"
	}
	return kindNames[k]
}

// IsExpression reports whether nodes of kind k are written by the
// expression writer.
func (k Kind) IsExpression() bool {
	switch k {
	case KindSymbol,
		KindIntLiteral,
		KindFloatLiteral,
		KindCharLiteral,
		KindStringLiteral,
		KindBoolLiteral,
		KindNull,
		KindThis,
		KindBinaryExpression,
		KindUnaryExpression,
		KindParenthesizedExpression,
		KindCallExpression,
		KindArrayIndexedAccess,
		KindFieldAccess,
		KindArrayLiteral,
		KindTernaryExpression,
		KindViewAs:
		return true
	}
	return false
}

// IsDimension reports whether k is an array suffix attached to a type or
// declarator.
func (k Kind) IsDimension() bool {
	return k == KindDimension || k == KindFixedDimension
}

package ast

// Node kinds of the tree-sitter Rust grammar used by the engine and rules.
const (
	KindSourceFile      = "source_file"
	KindFunctionItem    = "function_item"
	KindClosure         = "closure_expression"
	KindClosureParams   = "closure_parameters"
	KindParameters      = "parameters"
	KindParameter       = "parameter"
	KindBlock           = "block"
	KindExprStatement   = "expression_statement"
	KindLetDeclaration  = "let_declaration"
	KindAttributeItem   = "attribute_item"
	KindInnerAttribute  = "inner_attribute_item"
	KindLineComment     = "line_comment"
	KindBlockComment    = "block_comment"
	KindError           = "ERROR"
	KindBinary          = "binary_expression"
	KindUnary           = "unary_expression"
	KindReference       = "reference_expression"
	KindAssignment      = "assignment_expression"
	KindCompoundAssign  = "compound_assignment_expr"
	KindCall            = "call_expression"
	KindArguments       = "arguments"
	KindField           = "field_expression"
	KindFieldIdentifier = "field_identifier"
	KindGenericFunction = "generic_function"
	KindIndex           = "index_expression"
	KindRange           = "range_expression"
	KindParenthesized   = "parenthesized_expression"
	KindIf              = "if_expression"
	KindElseClause      = "else_clause"
	KindLetCondition    = "let_condition"
	KindIfLet           = "if_let_expression"
	KindWhile           = "while_expression"
	KindWhileLet        = "while_let_expression"
	KindFor             = "for_expression"
	KindLoop            = "loop_expression"
	KindMatch           = "match_expression"
	KindMatchBlock      = "match_block"
	KindMatchArm        = "match_arm"
	KindMatchPattern    = "match_pattern"
	KindReturn          = "return_expression"
	KindMacroInvocation = "macro_invocation"
	KindTokenTree       = "token_tree"
	KindIdentifier      = "identifier"
	KindScopedIdent     = "scoped_identifier"
	KindSelf            = "self"
	KindIntegerLiteral  = "integer_literal"
	KindFloatLiteral    = "float_literal"
	KindStringLiteral   = "string_literal"
	KindRawString       = "raw_string_literal"
	KindCharLiteral     = "char_literal"
	KindBooleanLiteral  = "boolean_literal"
	KindUnit            = "unit_expression"
	KindTupleStructPat  = "tuple_struct_pattern"
	KindReferencePat    = "reference_pattern"
	KindMutPattern      = "mut_pattern"
	KindReferenceType   = "reference_type"
	KindGenericType     = "generic_type"
	KindTypeArguments   = "type_arguments"
	KindTypeIdentifier  = "type_identifier"
	KindScopedType      = "scoped_type_identifier"
	KindPrimitiveType   = "primitive_type"
	KindTupleType       = "tuple_type"
	KindArrayType       = "array_type"
	KindMutSpecifier    = "mutable_specifier"
)

// Comparison operators.
var comparisonOps = map[string]bool{
	"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true,
}

// IsComparisonOp reports whether op is a comparison operator.
func IsComparisonOp(op string) bool {
	return comparisonOps[op]
}

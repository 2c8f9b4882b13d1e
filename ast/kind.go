package ast

// ExprKind tags every concrete Expression implementation with a closed
// enum value (§9: "represent Value as a closed tagged sum... implement
// kernels as exhaustive matches on tag" — applied here to the CST
// itself, not just the Value domain, since §3.2 describes the CST the
// same way: "a tree of tagged nodes, one kind per grammar rule"). A
// consumer that only needs to know which production produced a node
// (for a diagnostic, a dispatch table, or a fast pre-check before a
// type assertion) can switch on Kind() instead of a full type switch.
type ExprKind int

const (
	KindIdent ExprKind = iota
	KindSelect
	KindCall
	KindCreateList
	KindCreateStruct
	KindStructEntry
	KindComprehension
	KindError
	KindInt64Constant
	KindUint64Constant
	KindDoubleConstant
	KindStringConstant
	KindBytesConstant
	KindBoolConstant
	KindNullConstant
)

func (k ExprKind) String() string {
	switch k {
	case KindIdent:
		return "Ident"
	case KindSelect:
		return "Select"
	case KindCall:
		return "Call"
	case KindCreateList:
		return "CreateList"
	case KindCreateStruct:
		return "CreateStruct"
	case KindStructEntry:
		return "StructEntry"
	case KindComprehension:
		return "Comprehension"
	case KindError:
		return "Error"
	case KindInt64Constant:
		return "Int64Constant"
	case KindUint64Constant:
		return "Uint64Constant"
	case KindDoubleConstant:
		return "DoubleConstant"
	case KindStringConstant:
		return "StringConstant"
	case KindBytesConstant:
		return "BytesConstant"
	case KindBoolConstant:
		return "BoolConstant"
	case KindNullConstant:
		return "NullConstant"
	}
	return "Unknown"
}

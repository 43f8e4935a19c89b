package lang

import "strconv"

// RelOp is a relational operator (rel_op_extended).
type RelOp int

const (
	RelLess RelOp = iota + 1
	RelGreater
	RelLessEqual
	RelGreaterEqual
	RelNotEqual
	RelEqual
	RelInstanceNotEqual
	RelInstanceEqual
	RelIn
	RelLike
)

// AddOp is an additive operator (add_like_op).
type AddOp int

const (
	AddPlus AddOp = iota + 1
	AddMinus
	AddOr
	AddXor
)

// MulOp is a multiplicative operator (multiplication_like_op).
type MulOp int

const (
	MulTimes MulOp = iota + 1
	MulDivide
	MulDiv
	MulMod
	MulAnd
	MulConcat
)

// PowerOp is the exponentiation operator.
type PowerOp int

const Power PowerOp = 1

// UnaryOp is a prefix operator.
type UnaryOp int

const (
	UnaryPlus UnaryOp = iota + 1
	UnaryMinus
	UnaryNot
)

// opToken maps operator text to its value. Word operators are matched as
// keywords; symbol operators must not be followed by notBefore.
type opToken[Op ~int] struct {
	text      string
	op        Op
	word      bool
	notBefore byte
}

// Tables are ordered longest match first.
//
//nolint:gochecknoglobals
var (
	relOps = []opToken[RelOp]{
		{text: ":<>:", op: RelInstanceNotEqual},
		{text: ":=:", op: RelInstanceEqual},
		{text: "<=", op: RelLessEqual},
		{text: ">=", op: RelGreaterEqual},
		{text: "<>", op: RelNotEqual},
		{text: "<", op: RelLess},
		{text: ">", op: RelGreater},
		{text: "=", op: RelEqual},
		{text: "IN", op: RelIn, word: true},
		{text: "LIKE", op: RelLike, word: true},
	}
	addOps = []opToken[AddOp]{
		{text: "+", op: AddPlus},
		{text: "-", op: AddMinus},
		{text: "OR", op: AddOr, word: true},
		{text: "XOR", op: AddXor, word: true},
	}
	mulOps = []opToken[MulOp]{
		{text: "*", op: MulTimes, notBefore: '*'},
		{text: "/", op: MulDivide},
		{text: "DIV", op: MulDiv, word: true},
		{text: "MOD", op: MulMod, word: true},
		{text: "AND", op: MulAnd, word: true},
		{text: "||", op: MulConcat},
	}
	powerOps = []opToken[PowerOp]{
		{text: "**", op: Power},
	}
	unaryOps = []opToken[UnaryOp]{
		{text: "+", op: UnaryPlus},
		{text: "-", op: UnaryMinus},
		{text: "NOT", op: UnaryNot, word: true},
	}
)

// operator matches the first entry of table at the next token.
func operator[Op ~int](p *parser, table []opToken[Op]) (Op, bool) {
	s := p.mark()

	for _, t := range table {
		if t.word {
			if p.keyword(t.text) {
				return t.op, true
			}

			continue
		}

		if p.symbol(t.text) {
			if t.notBefore == 0 || p.eof() || p.input[p.pos] != t.notBefore {
				return t.op, true
			}

			p.reset(s)
		}
	}

	return 0, false
}

func opText[Op ~int](table []opToken[Op], op Op, name string) string {
	for _, t := range table {
		if t.op == op {
			return t.text
		}
	}

	return name + "(" + strconv.Itoa(int(op)) + ")"
}

// String returns the operator's EXPRESS text.
func (o RelOp) String() string { return opText(relOps, o, "RelOp") }

// String returns the operator's EXPRESS text.
func (o AddOp) String() string { return opText(addOps, o, "AddOp") }

// String returns the operator's EXPRESS text.
func (o MulOp) String() string { return opText(mulOps, o, "MulOp") }

// String returns the operator's EXPRESS text.
func (o PowerOp) String() string { return opText(powerOps, o, "PowerOp") }

// String returns the operator's EXPRESS text.
func (o UnaryOp) String() string { return opText(unaryOps, o, "UnaryOp") }

package frontend

import "ilocfe/src/ir/iloc"

type reservedItem struct {
	val string
	op  iloc.Opcode
}

// rw contains the set of all ILOC opcode mnemonics.
// The first dimension equals the length of the word.
// The second dimension is the slice of all words of that length.
// Indexing by length and searching should be faster than using a hash table.
var rw = [...][]reservedItem{
	// One-grams
	{},
	// Two-grams
	{},
	// Three-grams
	{
		{val: "add", op: iloc.Add},
		{val: "sub", op: iloc.Sub},
		{val: "nop", op: iloc.Nop},
	},
	// Four-grams
	{
		{val: "load", op: iloc.Load},
		{val: "mult", op: iloc.Mult},
	},
	// Five-grams
	{
		{val: "loadI", op: iloc.LoadI},
		{val: "store", op: iloc.Store},
	},
	// Six-grams
	{
		{val: "lshift", op: iloc.Lshift},
		{val: "rshift", op: iloc.Rshift},
		{val: "output", op: iloc.Output},
	},
}

// isKeyword returns true if the string s is an ILOC opcode mnemonic.
// On the return of true the Opcode of the mnemonic is returned.
func isKeyword(s string) (bool, iloc.Opcode) {
	if len(s) == 0 || len(s) > len(rw) {
		return false, iloc.Nop
	}

	// Check if string s is a reserved word by iterating over all words in rw of length len(s).
	for _, e1 := range rw[len(s)-1] {
		if e1.val == s {
			return true, e1.op
		}
	}
	return false, iloc.Nop
}

// opcodeItem returns the token category of opcode op.
func opcodeItem(op iloc.Opcode) itemType {
	switch {
	case op == iloc.Load || op == iloc.Store:
		return itemMemop
	case op == iloc.LoadI:
		return itemLoadI
	case op.IsArithmetic():
		return itemArithop
	case op == iloc.Output:
		return itemOutput
	}
	return itemNop
}

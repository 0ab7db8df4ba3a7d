package domain

import (
	"github.com/sjas/adlint-sub000/utils"
	"github.com/sjas/adlint-sub000/utils/hmap"
)

type opcode uint8

const (
	opNil opcode = iota
	opUnlimited
	opNaN
	opEqualTo
	opLessThan
	opGreaterThan
	opUndefined
	opAmbiguous
	opMakeIntersection
	opMakeUnion
	opIntersection
	opUnion
	opInversion
	opAdd
	opMul
	opDiv
	opAnd
	opOr
	opXor
	opShl
	opShr
	opNeg
	opNot
	opToInteger
	opToReal
	opLt
	opEq
	opLogicalAnd
	opLogicalOr
	opLogicalNot
	opNarrow
	opWiden
)

// memoKey identifies one factory call. Domain operands are compared by
// their canonical rendering and their right shift semantics.
type memoKey struct {
	op       opcode
	lshr     bool
	lhs, rhs Domain
	val      Value
	aux      int
}

type memoKeyHasher struct{}

func hashDomain(d Domain) uint32 {
	if d == nil {
		return 0
	}
	return utils.HashCombine(d.Hash(), utils.HashBool(d.LogicalShr()))
}

func sameDomain(a, b Domain) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b) && a.LogicalShr() == b.LogicalShr()
}

func (memoKeyHasher) Hash(k memoKey) uint32 {
	return utils.HashCombine(
		uint32(k.op),
		utils.HashBool(k.lshr),
		hashDomain(k.lhs),
		hashDomain(k.rhs),
		k.val.Hash(),
		uint32(k.aux),
	)
}

func (memoKeyHasher) Equal(a, b memoKey) bool {
	return a.op == b.op &&
		a.lshr == b.lshr &&
		a.aux == b.aux &&
		a.val.Equal(b.val) &&
		sameDomain(a.lhs, b.lhs) &&
		sameDomain(a.rhs, b.rhs)
}

// Stats reports memo table usage.
type Stats struct {
	Entries int
	Hits    int
	Misses  int
}

type memo struct {
	table *hmap.Map[memoKey, Domain]
	stats Stats
}

func newMemo() *memo {
	return &memo{table: hmap.NewMap[Domain](utils.Hasher[memoKey](memoKeyHasher{}))}
}

func (m *memo) lookup(k memoKey, compute func() Domain) Domain {
	if d, ok := m.table.GetOk(k); ok {
		m.stats.Hits++
		return d
	}
	m.stats.Misses++
	d := compute()
	m.table.Set(k, d)
	return d
}

func (m *memo) clear() {
	m.table.Clear()
	m.stats = Stats{}
}

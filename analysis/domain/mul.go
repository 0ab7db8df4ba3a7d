package domain

type sign uint8

const (
	nonNegative sign = iota
	negative
	straddling
)

func signOf(lo, hi Value) sign {
	switch {
	case lo.Sign() >= 0:
		return nonNegative
	case hi.Sign() < 0:
		return negative
	}
	return straddling
}

func (s sign) String() string {
	switch s {
	case nonNegative:
		return "nonneg"
	case negative:
		return "neg"
	}
	return "straddle"
}

// multiplyRanges computes the bounds of [alo, ahi] * [blo, bhi]. The sign of
// each operand picks which corner products are extremal:
//
//	a \ b      nonneg             neg                straddle
//	nonneg     alo*blo, ahi*bhi   ahi*blo, alo*bhi   ahi*blo, ahi*bhi
//	neg        alo*bhi, ahi*blo   ahi*bhi, alo*blo   alo*bhi, alo*blo
//	straddle   alo*bhi, ahi*bhi   ahi*blo, alo*blo   min(alo*bhi, ahi*blo), max(alo*blo, ahi*bhi)
func multiplyRanges(alo, ahi, blo, bhi Value) (lo, hi Value) {
	switch [2]sign{signOf(alo, ahi), signOf(blo, bhi)} {
	case [2]sign{nonNegative, nonNegative}:
		return alo.Mul(blo), ahi.Mul(bhi)
	case [2]sign{nonNegative, negative}:
		return ahi.Mul(blo), alo.Mul(bhi)
	case [2]sign{nonNegative, straddling}:
		return ahi.Mul(blo), ahi.Mul(bhi)
	case [2]sign{negative, nonNegative}:
		return alo.Mul(bhi), ahi.Mul(blo)
	case [2]sign{negative, negative}:
		return ahi.Mul(bhi), alo.Mul(blo)
	case [2]sign{negative, straddling}:
		return alo.Mul(bhi), alo.Mul(blo)
	case [2]sign{straddling, nonNegative}:
		return alo.Mul(bhi), ahi.Mul(bhi)
	case [2]sign{straddling, negative}:
		return ahi.Mul(blo), alo.Mul(blo)
	}
	return minOf(alo.Mul(bhi), ahi.Mul(blo)), maxOf(alo.Mul(blo), ahi.Mul(bhi))
}

func bounds(d Domain) (lo, hi Value, ok bool) {
	lo, lok := d.Min()
	hi, hok := d.Max()
	return lo, hi, lok && hok
}

// mulRanges multiplies two bounded operands, at least one of which is a
// conjunction, by interval multiplication.
func (f *Factory) mulRanges(a, b Domain) (Domain, bool) {
	_, aand := a.(*Intersection)
	_, band := b.(*Intersection)
	if !aand && !band {
		return nil, false
	}
	alo, ahi, aok := bounds(a)
	blo, bhi, bok := bounds(b)
	if !aok || !bok {
		return nil, false
	}
	lo, hi := multiplyRanges(alo, ahi, blo, bhi)
	return f.ClosedRange(lo, hi), true
}

// divRanges divides by a bounded divisor excluding zero. Division by a
// divisor of constant sign is monotone in the dividend, so the bounds of the
// dividend divided by the bounds of the divisor are extremal.
func (f *Factory) divRanges(a, b Domain) (Domain, bool) {
	blo, bhi, ok := bounds(b)
	if !ok || signOf(blo, bhi) == straddling || blo.Sign() == 0 {
		return nil, false
	}
	positive := blo.Sign() > 0

	quotients := func(v Value) (lo, hi Value) {
		x, y := v.Quo(blo), v.Quo(bhi)
		return minOf(x, y), maxOf(x, y)
	}

	alo, lok := a.Min()
	ahi, hok := a.Max()
	switch {
	case lok && hok:
		l1, h1 := quotients(alo)
		l2, h2 := quotients(ahi)
		return f.ClosedRange(minOf(l1, l2), maxOf(h1, h2)), true
	case hok:
		lo, hi := quotients(ahi)
		if positive {
			return f.LessThanOrEqualTo(hi), true
		}
		return f.GreaterThanOrEqualTo(lo), true
	case lok:
		lo, hi := quotients(alo)
		if positive {
			return f.GreaterThanOrEqualTo(lo), true
		}
		return f.LessThanOrEqualTo(hi), true
	}
	return nil, false
}

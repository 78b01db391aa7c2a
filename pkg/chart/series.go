package chart

// Series is an oldest-first sequence of samples. samples.View implements it.
type Series interface {
	Len() int
	At(i int) float64
}

// Values is a static series, used for single-value snapshots and
// precomputed reference curves.
type Values []float64

func (v Values) Len() int         { return len(v) }
func (v Values) At(i int) float64 { return v[i] }

type ratio struct{ num, den Series }

// Ratio divides num by den sample by sample; a zero denominator yields 0.
func Ratio(num, den Series) Series {
	return ratio{num: num, den: den}
}

func (r ratio) Len() int {
	return min(r.num.Len(), r.den.Len())
}

func (r ratio) At(i int) float64 {
	d := r.den.At(i)
	if d == 0 {
		return 0
	}
	return r.num.At(i) / d
}

type index struct{ s Series }

// Index yields 0, 1, 2, ... alongside s, for charts plotted against the
// sample number.
func Index(s Series) Series {
	return index{s: s}
}

func (x index) Len() int         { return x.s.Len() }
func (x index) At(i int) float64 { return float64(i) }

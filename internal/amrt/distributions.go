package amrt

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Mode selects what a distribution call returns.
type Mode int

const (
	ModeMean     Mode = iota // E
	ModeSample               // ~
	ModePDF                  // f
	ModeCDF                  // F
	ModeQuantile             // Q
	ModeVariance             // V
)

// Rand is the generator used by ModeSample.
var Rand = rand.New(rand.NewPCG(1, 2))

// ParamError reports a distribution parameter outside its domain.
type ParamError struct {
	Dist string
	Msg  string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s", e.Dist, e.Msg)
}

type family struct {
	name     string
	nparams  int
	check    func(p []float64) string
	mean     func(p []float64) float64
	variance func(p []float64) float64
	pdf      func(x float64, p []float64) float64
	cdf      func(x float64, p []float64) float64
	quantile func(u float64, p []float64) float64
}

func (f *family) eval(mode Mode, args []float64) float64 {
	want := f.nparams
	if mode == ModePDF || mode == ModeCDF || mode == ModeQuantile {
		want++
	}
	if len(args) != want {
		panic(&ParamError{Dist: f.name, Msg: fmt.Sprintf("incorrect number of parameters: got %d, want %d", len(args), want)})
	}
	var x float64
	p := args
	if want > f.nparams {
		x, p = args[0], args[1:]
	}
	if msg := f.check(p); msg != "" {
		panic(&ParamError{Dist: f.name, Msg: msg})
	}

	switch mode {
	case ModeSample:
		return f.quantile(Rand.Float64(), p)
	case ModePDF:
		return f.pdf(x, p)
	case ModeCDF:
		return f.cdf(x, p)
	case ModeQuantile:
		if x < 0 || x > 1 {
			panic(&ParamError{Dist: f.name, Msg: "quantile requires a probability in [0,1]"})
		}
		return f.quantile(x, p)
	case ModeVariance:
		return f.variance(p)
	default:
		return f.mean(p)
	}
}

var normal = &family{
	name:    "Norm",
	nparams: 2,
	check: func(p []float64) string {
		if p[1] <= 0 {
			return "σ should be >0"
		}
		return ""
	},
	mean:     func(p []float64) float64 { return p[0] },
	variance: func(p []float64) float64 { return p[1] * p[1] },
	pdf: func(x float64, p []float64) float64 {
		z := (x - p[0]) / p[1]
		return math.Exp(-0.5*z*z) / (p[1] * math.Sqrt(2*math.Pi))
	},
	cdf: func(x float64, p []float64) float64 {
		return 0.5 * math.Erfc(-(x-p[0])/(p[1]*math.Sqrt2))
	},
	quantile: func(u float64, p []float64) float64 {
		return p[0] + p[1]*math.Sqrt2*math.Erfinv(2*u-1)
	},
}

var logNormal = &family{
	name:    "LogNorm",
	nparams: 2,
	check: func(p []float64) string {
		if p[1] <= 0 {
			return "σ should be >0"
		}
		return ""
	},
	mean: func(p []float64) float64 { return math.Exp(p[0] + p[1]*p[1]/2) },
	variance: func(p []float64) float64 {
		s2 := p[1] * p[1]
		return (math.Exp(s2) - 1) * math.Exp(2*p[0]+s2)
	},
	pdf: func(x float64, p []float64) float64 {
		if x <= 0 {
			return 0
		}
		return normal.pdf(math.Log(x), p) / x
	},
	cdf: func(x float64, p []float64) float64 {
		if x <= 0 {
			return 0
		}
		return normal.cdf(math.Log(x), p)
	},
	quantile: func(u float64, p []float64) float64 { return math.Exp(normal.quantile(u, p)) },
}

var uniform = &family{
	name:    "Unif",
	nparams: 2,
	check: func(p []float64) string {
		if p[0] >= p[1] {
			return "a should be <b"
		}
		return ""
	},
	mean:     func(p []float64) float64 { return (p[0] + p[1]) / 2 },
	variance: func(p []float64) float64 { return (p[1] - p[0]) * (p[1] - p[0]) / 12 },
	pdf: func(x float64, p []float64) float64 {
		if x < p[0] || x > p[1] {
			return 0
		}
		return 1 / (p[1] - p[0])
	},
	cdf: func(x float64, p []float64) float64 {
		return math.Min(1, math.Max(0, (x-p[0])/(p[1]-p[0])))
	},
	quantile: func(u float64, p []float64) float64 { return p[0] + u*(p[1]-p[0]) },
}

var exponential = &family{
	name:    "Expo",
	nparams: 1,
	check: func(p []float64) string {
		if p[0] <= 0 {
			return "λ should be >0"
		}
		return ""
	},
	mean:     func(p []float64) float64 { return 1 / p[0] },
	variance: func(p []float64) float64 { return 1 / (p[0] * p[0]) },
	pdf: func(x float64, p []float64) float64 {
		if x < 0 {
			return 0
		}
		return p[0] * math.Exp(-p[0]*x)
	},
	cdf: func(x float64, p []float64) float64 {
		if x < 0 {
			return 0
		}
		return 1 - math.Exp(-p[0]*x)
	},
	quantile: func(u float64, p []float64) float64 { return -math.Log(1-u) / p[0] },
}

var bernoulli = &family{
	name:    "Bern",
	nparams: 1,
	check: func(p []float64) string {
		if p[0] < 0 || p[0] > 1 {
			return "p should be in [0,1]"
		}
		return ""
	},
	mean:     func(p []float64) float64 { return p[0] },
	variance: func(p []float64) float64 { return p[0] * (1 - p[0]) },
	pdf: func(x float64, p []float64) float64 {
		switch x {
		case 0:
			return 1 - p[0]
		case 1:
			return p[0]
		}
		return 0
	},
	cdf: func(x float64, p []float64) float64 {
		switch {
		case x < 0:
			return 0
		case x < 1:
			return 1 - p[0]
		}
		return 1
	},
	quantile: func(u float64, p []float64) float64 {
		if u <= 1-p[0] {
			return 0
		}
		return 1
	},
}

// triangular takes minimum a, mode c and maximum b, in that order.
var triangular = &family{
	name:    "Tri",
	nparams: 3,
	check: func(p []float64) string {
		if !(p[0] <= p[1] && p[1] <= p[2]) || p[0] == p[2] {
			return "require a≤c≤b and a<b"
		}
		return ""
	},
	mean: func(p []float64) float64 { return (p[0] + p[1] + p[2]) / 3 },
	variance: func(p []float64) float64 {
		a, c, b := p[0], p[1], p[2]
		return (a*a + b*b + c*c - a*b - a*c - b*c) / 18
	},
	pdf: func(x float64, p []float64) float64 {
		a, c, b := p[0], p[1], p[2]
		switch {
		case x < a || x > b:
			return 0
		case x < c:
			return 2 * (x - a) / ((b - a) * (c - a))
		case x == c:
			return 2 / (b - a)
		}
		return 2 * (b - x) / ((b - a) * (b - c))
	},
	cdf: func(x float64, p []float64) float64 {
		a, c, b := p[0], p[1], p[2]
		switch {
		case x <= a:
			return 0
		case x >= b:
			return 1
		case x <= c:
			return (x - a) * (x - a) / ((b - a) * (c - a))
		}
		return 1 - (b-x)*(b-x)/((b-a)*(b-c))
	},
	quantile: func(u float64, p []float64) float64 {
		a, c, b := p[0], p[1], p[2]
		if u < (c-a)/(b-a) {
			return a + math.Sqrt(u*(b-a)*(c-a))
		}
		return b - math.Sqrt((1-u)*(b-a)*(b-c))
	},
}

// Norm is the Normal distribution with mean μ and standard deviation σ.
func Norm(mode Mode, args ...float64) float64 { return normal.eval(mode, args) }

// LogNorm is the log-normal distribution with log-scale μ and σ.
func LogNorm(mode Mode, args ...float64) float64 { return logNormal.eval(mode, args) }

// Unif is the continuous uniform distribution on [a,b].
func Unif(mode Mode, args ...float64) float64 { return uniform.eval(mode, args) }

// Expo is the exponential distribution with rate λ.
func Expo(mode Mode, args ...float64) float64 { return exponential.eval(mode, args) }

// Bern is the Bernoulli distribution with success probability p.
func Bern(mode Mode, args ...float64) float64 { return bernoulli.eval(mode, args) }

// Tri is the triangular distribution.
func Tri(mode Mode, args ...float64) float64 { return triangular.eval(mode, args) }

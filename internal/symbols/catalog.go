package symbols

import "sort"

// FunctionSpec describes how a built-in function is written in Go. Inline
// functions map directly onto a Go expression; the others need a helper
// definition emitted once into the generated program.
type FunctionSpec struct {
	Name   string
	Target string
	Helper string
}

// Inline reports whether the function needs no helper definition.
func (f FunctionSpec) Inline() bool {
	return f.Helper == ""
}

var functions = map[string]FunctionSpec{}

func inline(name, target string) {
	functions[name] = FunctionSpec{Name: name, Target: target}
}

func helper(name, body string) {
	functions[name] = FunctionSpec{Name: name, Target: name, Helper: body}
}

func init() {
	inline("abs", "math.Abs")
	inline("acos", "math.Acos")
	inline("asin", "math.Asin")
	inline("atan", "math.Atan")
	inline("cbrt", "math.Cbrt")
	inline("ceil", "math.Ceil")
	inline("cos", "math.Cos")
	inline("cosh", "math.Cosh")
	inline("erf", "math.Erf")
	inline("exp", "math.Exp")
	inline("floor", "math.Floor")
	inline("gamma", "math.Gamma")
	inline("hypot", "math.Hypot")
	inline("invErf", "math.Erfinv")
	inline("log", "math.Log")
	inline("log10", "math.Log10")
	inline("max", "math.Max")
	inline("min", "math.Min")
	inline("round", "math.Round")
	inline("sin", "math.Sin")
	inline("sinh", "math.Sinh")
	inline("sqrt", "math.Sqrt")
	inline("tan", "math.Tan")
	inline("tanh", "math.Tanh")

	helper("bound", `// bound clamps x to [a, b].
func bound(x, a, b float64) float64 {
	return math.Min(math.Max(x, a), b)
}`)
	helper("choose", `// choose is the binomial coefficient n over k.
func choose(n, k float64) float64 {
	if k < 0 || k > n {
		return 0
	}
	a, _ := math.Lgamma(n + 1)
	b, _ := math.Lgamma(k + 1)
	c, _ := math.Lgamma(n - k + 1)
	return math.Round(math.Exp(a - b - c))
}`)
	helper("fact", `// fact is n factorial.
func fact(n float64) float64 {
	return math.Round(math.Gamma(n + 1))
}`)
	helper("logb", `// logb is the logarithm of x in base b.
func logb(x, b float64) float64 {
	return math.Log(x) / math.Log(b)
}`)
	helper("logGamma", `func logGamma(x float64) float64 {
	v, _ := math.Lgamma(x)
	return v
}`)
	helper("logit", `func logit(p float64) float64 {
	return math.Log(p / (1 - p))
}`)
	helper("expit", `func expit(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}`)
	helper("probToOdds", `func probToOdds(p float64) float64 {
	return p / (1 - p)
}`)
	helper("oddsToProb", `func oddsToProb(o float64) float64 {
	return o / (1 + o)
}`)
	helper("probToRate", `// probToRate converts a probability over time t (default 1) to a rate.
func probToRate(p float64, t ...float64) float64 {
	dt := 1.0
	if len(t) > 0 {
		dt = t[0]
	}
	return -math.Log(1-p) / dt
}`)
	helper("rateToProb", `// rateToProb converts a rate to a probability over time t (default 1).
func rateToProb(r float64, t ...float64) float64 {
	dt := 1.0
	if len(t) > 0 {
		dt = t[0]
	}
	return 1 - math.Exp(-r*dt)
}`)
	helper("probRescale", `// probRescale rescales probability p from time interval t1 to t2.
func probRescale(p, t1, t2 float64) float64 {
	return 1 - math.Pow(1-p, t2/t1)
}`)
	helper("signum", `func signum(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}`)
}

var matrixFunctions = map[string]bool{
	"det":   true,
	"diag":  true,
	"iden":  true,
	"ones":  true,
	"tp":    true,
	"tr":    true,
	"zeros": true,
}

var distributions = map[string]bool{
	"Bern":    true,
	"Expo":    true,
	"LogNorm": true,
	"Norm":    true,
	"Tri":     true,
	"Unif":    true,
}

var constants = map[string]string{
	"pi":  "math.Pi",
	"e":   "math.E",
	"inf": "math.Inf(1)",
}

// LookupFunction returns the description of a built-in function.
func LookupFunction(name string) (FunctionSpec, bool) {
	f, ok := functions[name]
	return f, ok
}

// Functions lists every built-in function in name order.
func Functions() []FunctionSpec {
	out := make([]FunctionSpec, 0, len(functions))
	for _, f := range functions {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// IsMatrixFunction reports whether name is a built-in matrix function.
func IsMatrixFunction(name string) bool { return matrixFunctions[name] }

// IsDistribution reports whether name is a built-in distribution.
func IsDistribution(name string) bool { return distributions[name] }

// Builtins returns every name the classifier treats as built in, including
// the trace keyword. Model symbols must not reuse them.
func Builtins() []string {
	names := []string{TraceWord}
	for n := range functions {
		names = append(names, n)
	}
	for n := range matrixFunctions {
		names = append(names, n)
	}
	for n := range distributions {
		names = append(names, n)
	}
	for n := range constants {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

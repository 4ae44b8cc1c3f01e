package eval

func Precision(truePositives, testPositives int) float64 {
	return float64(truePositives) / float64(testPositives)
}

func Recall(truePositives, conditionPositives int) float64 {
	return float64(truePositives) / float64(conditionPositives)
}

func F1(precision, recall float64) float64 {
	return 2.0 * (precision * recall) / (precision + recall)
}

// Error is one wrong judgment; Class groups errors for reporting.
type Error interface {
	String() string
	Class() string
}

type Errors []Error

func (ers Errors) ByType() map[string]int {
	retval := make(map[string]int)
	for _, e := range ers {
		if curval, exists := retval[e.Class()]; exists {
			retval[e.Class()] = curval + 1
		} else {
			retval[e.Class()] = 1
		}
	}
	return retval
}

// Result tallies binary accept/reject judgments against gold annotations;
// positive means accepted.
type Result struct {
	TP, FP, TN, FN int
	Errors         Errors
}

// Judge tallies one judgment; err is recorded when the judgment disagrees
// with gold.
func (r *Result) Judge(gold, test bool, err Error) {
	switch {
	case gold && test:
		r.TP++
	case !gold && test:
		r.FP++
		r.Errors = append(r.Errors, err)
	case gold && !test:
		r.FN++
		r.Errors = append(r.Errors, err)
	default:
		r.TN++
	}
}

func (r *Result) All() int {
	return r.TP + r.FP + r.TN + r.FN
}

func (r *Result) Correct() int {
	return r.TP + r.TN
}

func (r *Result) Incorrect() int {
	return r.FP + r.FN
}

func (r *Result) TestPositives() int {
	return r.TP + r.FP
}

func (r *Result) TestNegatives() int {
	return r.TN + r.FN
}

func (r *Result) ConditionPositives() int {
	return r.TP + r.FN
}

func (r *Result) ConditionNegatives() int {
	return r.FP + r.TN
}

func (r *Result) Precision() float64 {
	return Precision(r.TP, r.TestPositives())
}

func (r *Result) Recall() float64 {
	return Recall(r.TP, r.ConditionPositives())
}

func (r *Result) Accuracy() float64 {
	return float64(r.Correct()) / float64(r.All())
}

func (r *Result) F1() float64 {
	return F1(r.Precision(), r.Recall())
}

package eval

import "testing"

type judgment struct {
	sentence string
	gold     bool
}

func (j judgment) String() string {
	return j.sentence
}

func (j judgment) Class() string {
	if j.gold {
		return "false reject"
	}
	return "false accept"
}

func TestResultCounts(t *testing.T) {
	result := new(Result)
	result.Judge(true, true, nil)
	result.Judge(true, true, nil)
	result.Judge(true, true, nil)
	result.Judge(false, false, nil)
	result.Judge(false, false, nil)
	result.Judge(true, false, judgment{"missed", true})
	result.Judge(false, true, judgment{"allowed", false})
	if result.TP != 3 {
		t.Error("Expected 3 true positives, got", result.TP)
	}
	if result.TN != 2 {
		t.Error("Expected 2 true negatives, got", result.TN)
	}
	if result.FP != 1 {
		t.Error("Expected 1 false positive, got", result.FP)
	}
	if result.FN != 1 {
		t.Error("Expected 1 false negative, got", result.FN)
	}
	if result.All() != 7 {
		t.Error("Expected 7 judgments, got", result.All())
	}
	if result.Correct() != 5 {
		t.Error("Expected 5 correct, got", result.Correct())
	}
	if result.Incorrect() != 2 {
		t.Error("Expected 2 incorrect, got", result.Incorrect())
	}
	if result.TestPositives() != 4 {
		t.Error("Expected 4 test positives, got", result.TestPositives())
	}
	if result.ConditionPositives() != 4 {
		t.Error("Expected 4 condition positives, got", result.ConditionPositives())
	}
}

func TestResultScores(t *testing.T) {
	result := new(Result)
	result.Judge(true, true, nil)
	result.Judge(true, true, nil)
	result.Judge(true, true, nil)
	result.Judge(false, true, judgment{"allowed", false})
	result.Judge(false, false, nil)
	result.Judge(false, false, nil)
	result.Judge(false, false, nil)
	result.Judge(true, false, judgment{"missed", true})
	if result.Precision() != 0.75 {
		t.Error("Expected precision 0.75, got", result.Precision())
	}
	if result.Recall() != 0.75 {
		t.Error("Expected recall 0.75, got", result.Recall())
	}
	if result.F1() != 0.75 {
		t.Error("Expected F1 0.75, got", result.F1())
	}
	if result.Accuracy() != 0.75 {
		t.Error("Expected accuracy 0.75, got", result.Accuracy())
	}
}

func TestErrorsByType(t *testing.T) {
	result := new(Result)
	result.Judge(false, true, judgment{"a", false})
	result.Judge(false, true, judgment{"b", false})
	result.Judge(true, false, judgment{"c", true})
	if len(result.Errors) != 3 {
		t.Error("Expected 3 recorded errors, got", len(result.Errors))
	}
	byType := result.Errors.ByType()
	if byType["false accept"] != 2 {
		t.Error("Expected 2 false accepts, got", byType["false accept"])
	}
	if byType["false reject"] != 1 {
		t.Error("Expected 1 false reject, got", byType["false reject"])
	}
}

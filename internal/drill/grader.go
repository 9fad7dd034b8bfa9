package drill

// Verdict is the grading outcome for one field.
type Verdict struct {
	Submitted Answer `json:"submitted"`
	Canonical int    `json:"canonical"`
	Correct   bool   `json:"correct"`
}

// GradeResult is the per-field outcome of checking one submission.
type GradeResult struct {
	Verdicts   map[Field]Verdict `json:"verdicts"`
	AllCorrect bool              `json:"allCorrect"`
}

// Grade compares a submission against the scenario's canonical values using
// exact integer equality.
func Grade(s Scenario, sub Submission) GradeResult {
	result := GradeResult{
		Verdicts:   make(map[Field]Verdict, len(Fields)),
		AllCorrect: true,
	}
	for _, f := range Fields {
		answer := sub[f]
		canonical := s.Value(f)
		correct := answer.Matches(canonical)
		result.Verdicts[f] = Verdict{
			Submitted: answer,
			Canonical: canonical,
			Correct:   correct,
		}
		result.AllCorrect = result.AllCorrect && correct
	}
	return result
}

// CorrectCount returns how many fields were answered correctly.
func (r GradeResult) CorrectCount() int {
	n := 0
	for _, v := range r.Verdicts {
		if v.Correct {
			n++
		}
	}
	return n
}

// Headline is the one-line summary shown after checking.
func (r GradeResult) Headline() string {
	if r.AllCorrect {
		return "Perfect! All calculations correct."
	}
	return "Not quite right. Check the corrections below."
}

// Correction describes a verdict for display, e.g.
// "Rake: You said 50 kr, correct is 55 kr".
func (v Verdict) Correction(f Field, currency string) string {
	if v.Correct {
		return f.Label() + ": " + amount(v.Canonical, currency)
	}
	said := v.Submitted.String()
	if !v.Submitted.IsEmpty() {
		said = amount(mustInt(v.Submitted), currency)
	}
	return f.Label() + ": You said " + said + ", correct is " + amount(v.Canonical, currency)
}

func amount(v int, currency string) string {
	if currency == "" {
		return Value(v).String()
	}
	return Value(v).String() + " " + currency
}

func mustInt(a Answer) int {
	v, _ := a.Int()
	return v
}

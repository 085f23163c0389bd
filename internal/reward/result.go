package reward

type Code uint8

const (
	NotVictory Code = iota + 1
	MissingRewardData
	MalformedRewardLine
	CountMismatch
	LineMissing
	InventoryShortfall
)

var codeToString = map[Code]string{
	NotVictory:          "not_victory",
	MissingRewardData:   "missing_reward_data",
	MalformedRewardLine: "malformed_reward_line",
	CountMismatch:       "count_mismatch",
	LineMissing:         "line_missing",
	InventoryShortfall:  "inventory_shortfall",
}

func (c Code) String() string {
	if s, ok := codeToString[c]; ok {
		return s
	}
	return "unknown"
}

func (c Code) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// Problem is one validation failure. Line is the reward index it concerns,
// or -1.
type Problem struct {
	Code     Code   `json:"code"`
	Line     int    `json:"line"`
	Message  string `json:"message"`
	Expected int    `json:"expected,omitempty"`
	Actual   int    `json:"actual,omitempty"`
}

type Validation struct {
	Valid    bool      `json:"valid"`
	Problems []Problem `json:"problems,omitempty"`
}

func (v *Validation) add(p Problem) { v.Problems = append(v.Problems, p) }

func (v Validation) done() Validation {
	v.Valid = len(v.Problems) == 0
	return v
}

// Has reports whether any problem carries code.
func (v Validation) Has(code Code) bool {
	for _, p := range v.Problems {
		if p.Code == code {
			return true
		}
	}
	return false
}

type GrantResult struct {
	Success    bool             `json:"success"`
	Lines      []Line           `json:"lines,omitempty"`
	Count      int              `json:"count"`
	Totals     map[Category]int `json:"totals,omitempty"`
	Validation Validation       `json:"validation"`
}

package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/creal/internal/rpn"
)

// Default output settings for scenarios that do not set them.
const (
	DefaultDigits = 20
	DefaultRadix  = 10
)

// Scenario is a sequence of evaluation steps with expectations.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden
	// file and prefixes the history record IDs.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Digits and Radix control rendering. Zero means the default.
	Digits int `yaml:"digits,omitempty"`
	Radix  int `yaml:"radix,omitempty"`

	Steps []Step `yaml:"steps"`

	// Assertions are checked after all steps ran.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step evaluates one expression or compares two. Exactly one of Eval
// and Compare is set.
type Step struct {
	Eval    string   `yaml:"eval,omitempty"`
	Compare []string `yaml:"compare,omitempty"`

	// Expect is optional. Without it the step only has to run.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect lists the outcome a step should have. Empty fields are not
// checked.
type Expect struct {
	Result string `yaml:"result,omitempty"`
	Nice   string `yaml:"nice,omitempty"`
	Exact  *bool  `yaml:"exact,omitempty"`
	Order  string `yaml:"order,omitempty"`

	// Error is an error code such as DOMAIN. A step expecting an error
	// fails if it succeeds.
	Error string `yaml:"error,omitempty"`
}

// Assertion checks the trace or the history store after the run.
type Assertion struct {
	// Type is one of history_count, history_contains or trace_order.
	Type string `yaml:"type"`

	// Expression selects history records (history_count,
	// history_contains). For history_count an empty Expression counts
	// every record.
	Expression string `yaml:"expression,omitempty"`

	// Result is the stored result expected by history_contains.
	Result string `yaml:"result,omitempty"`

	// Count is the expected number of records (history_count).
	Count int `yaml:"count"`

	// Expressions must appear in the trace in this order (trace_order).
	Expressions []string `yaml:"expressions,omitempty"`
}

// Assertion type constants.
const (
	AssertHistoryCount    = "history_count"
	AssertHistoryContains = "history_contains"
	AssertTraceOrder      = "trace_order"
)

var validOrders = map[string]bool{
	rpn.Less:              true,
	rpn.Equal:             true,
	rpn.Greater:           true,
	rpn.Indistinguishable: true,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Reject unknown fields so typos like "assertion:" are caught.
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// digits returns the scenario's digit count or the default.
func (s *Scenario) digits() int {
	if s.Digits == 0 {
		return DefaultDigits
	}
	return s.Digits
}

func (s *Scenario) radix() int {
	if s.Radix == 0 {
		return DefaultRadix
	}
	return s.Radix
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Digits < 0 {
		return fmt.Errorf("digits must be non-negative")
	}

	if s.Radix != 0 && (s.Radix < 2 || s.Radix > 16) {
		return fmt.Errorf("radix must be between 2 and 16")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

func validateStep(index int, s *Step) error {
	switch {
	case s.Eval == "" && len(s.Compare) == 0:
		return fmt.Errorf("steps[%d]: one of eval or compare is required", index)
	case s.Eval != "" && len(s.Compare) != 0:
		return fmt.Errorf("steps[%d]: eval and compare are mutually exclusive", index)
	case s.Eval == "" && len(s.Compare) != 2:
		return fmt.Errorf("steps[%d]: compare needs exactly two expressions", index)
	}

	if s.Expect == nil {
		return nil
	}
	if s.Expect.Order != "" {
		if s.Eval != "" {
			return fmt.Errorf("steps[%d].expect: order only applies to compare", index)
		}
		if !validOrders[s.Expect.Order] {
			return fmt.Errorf("steps[%d].expect: unknown order %q", index, s.Expect.Order)
		}
	}
	if s.Expect.Error != "" && (s.Expect.Result != "" || s.Expect.Nice != "" || s.Expect.Order != "") {
		return fmt.Errorf("steps[%d].expect: error excludes other expectations", index)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertHistoryCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for history_count", index)
		}
	case AssertHistoryContains:
		if a.Expression == "" {
			return fmt.Errorf("assertions[%d]: expression is required for history_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Expressions) == 0 {
			return fmt.Errorf("assertions[%d]: expressions list is required for trace_order", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}

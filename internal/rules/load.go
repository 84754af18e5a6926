package rules

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"github.com/shopspring/decimal"

	"github.com/JERPCorporation/jerp-compliance/internal/money"
	"github.com/JERPCorporation/jerp-compliance/internal/violation"
)

// ruleDoc is the decode target for one rule in a CUE pack. Parameters are
// decimal strings so CUE never coerces a statutory figure through binary
// floating point.
type ruleDoc struct {
	Name     string            `json:"name"`
	Family   string            `json:"family"`
	Severity string            `json:"severity"`
	Active   *bool             `json:"active"`
	Params   map[string]string `json:"params"`
}

// Load reads a rule pack from a directory of CUE files and returns a Set.
// The pack exposes its rules under a top-level "rules" struct keyed by
// regulation code:
//
//	rules: CA_LABOR_CODE_512: {
//		name:     "California meal breaks"
//		family:   "CA_LABOR"
//		severity: "HIGH"
//		params: first_meal_threshold_hours: "5"
//	}
//
// CUE evaluation (constraints, defaults, cross-file unification) runs
// before decoding, so a pack can split jurisdictions across files and
// declare schema constraints alongside the data. Missing "active"
// defaults to true.
func Load(dir string) (*Set, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("rule pack directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("rule pack path is not a directory: %s", dir)
	}

	cueFiles, err := findCUEFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning rule pack: %w", err)
	}
	if len(cueFiles) == 0 {
		return nil, fmt.Errorf("no CUE files found in %s", dir)
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, fmt.Errorf("no CUE instances loaded from %s", dir)
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, fmt.Errorf("loading rule pack: %w", inst.Err)
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("building rule pack: %w", err)
	}

	rulesVal := value.LookupPath(cue.ParsePath("rules"))
	if !rulesVal.Exists() {
		return nil, fmt.Errorf("rule pack %s has no top-level \"rules\" struct", dir)
	}

	iter, err := rulesVal.Fields()
	if err != nil {
		return nil, fmt.Errorf("iterating rules: %w", err)
	}

	var loaded []Rule
	for iter.Next() {
		code := iter.Label()
		var doc ruleDoc
		if err := iter.Value().Decode(&doc); err != nil {
			return nil, fmt.Errorf("rule %s: %w", code, err)
		}
		r, err := docToRule(code, doc)
		if err != nil {
			return nil, err
		}
		loaded = append(loaded, r)
	}
	if len(loaded) == 0 {
		return nil, fmt.Errorf("rule pack %s defines no rules", dir)
	}

	return NewSet(loaded...), nil
}

// docToRule converts a decoded rule document into a validated Rule.
func docToRule(code string, doc ruleDoc) (Rule, error) {
	r := Rule{
		Code:     code,
		Name:     doc.Name,
		Family:   doc.Family,
		Severity: violation.Severity(doc.Severity),
		Active:   true,
	}
	if doc.Active != nil {
		r.Active = *doc.Active
	}
	if len(doc.Params) > 0 {
		r.Params = make(map[string]decimal.Decimal, len(doc.Params))
		for name, raw := range doc.Params {
			d, err := money.Parse(raw)
			if err != nil {
				return Rule{}, &ConfigError{Code: code, Param: name, Reason: err.Error()}
			}
			r.Params[name] = d
		}
	}
	if err := r.validate(); err != nil {
		return Rule{}, fmt.Errorf("rule pack: %w", err)
	}
	return r, nil
}

// findCUEFiles walks dir and returns all .cue file paths.
func findCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

package essay

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"essay-feedback/api/internal/essay/types"
	"essay-feedback/api/internal/prompt"
	"essay-feedback/api/internal/util"
)

// ErrCritiqueParse marks critique output that cannot be used. Callers recover
// from it by serving the fallback document.
var ErrCritiqueParse = errors.New("critique: unusable model output")

var (
	critiqueSchemaOnce sync.Once
	critiqueSchema     *jsonschema.Schema
	critiqueSchemaErr  error
)

func compiledCritiqueSchema() (*jsonschema.Schema, error) {
	critiqueSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("critique.schema.json", bytes.NewReader(prompt.CritiqueSchema)); err != nil {
			critiqueSchemaErr = fmt.Errorf("load critique schema: %w", err)
			return
		}
		critiqueSchema, critiqueSchemaErr = compiler.Compile("critique.schema.json")
	})
	return critiqueSchema, critiqueSchemaErr
}

// ParseCritique turns raw model text into a Critique. The text may be wrapped in
// code fences or prose; the object must match the critique schema.
func ParseCritique(raw []byte) (types.Critique, error) {
	out := util.StripCodeFences(string(raw))
	if out == "" {
		return types.Critique{}, fmt.Errorf("%w: empty output", ErrCritiqueParse)
	}

	var doc any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		obj := util.ExtractJSONObject(out)
		if obj == "" {
			return types.Critique{}, fmt.Errorf("%w: bad JSON: %v", ErrCritiqueParse, err)
		}
		if err := json.Unmarshal([]byte(obj), &doc); err != nil {
			return types.Critique{}, fmt.Errorf("%w: bad JSON: %v", ErrCritiqueParse, err)
		}
		out = obj
	}

	schema, err := compiledCritiqueSchema()
	if err != nil {
		return types.Critique{}, err
	}
	if err := schema.Validate(doc); err != nil {
		return types.Critique{}, fmt.Errorf("%w: %s", ErrCritiqueParse, strings.TrimSpace(err.Error()))
	}

	var c types.Critique
	if err := json.Unmarshal([]byte(out), &c); err != nil {
		return types.Critique{}, fmt.Errorf("%w: %v", ErrCritiqueParse, err)
	}
	return c, nil
}

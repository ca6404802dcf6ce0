package analyzer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Lixing-Zhang/outfit-finder/internal/models"
	"github.com/invopop/jsonschema"
	"github.com/xeipuuv/gojsonschema"
)

// planValidator checks model replies against the schema reflected from models.OutfitPlan
type planValidator struct {
	schema *gojsonschema.Schema
}

func newPlanValidator() (*planValidator, error) {
	reflector := &jsonschema.Reflector{
		Anonymous:                  true,
		DoNotReference:             true,
		AllowAdditionalProperties:  true,
		RequiredFromJSONSchemaTags: true,
	}
	s := reflector.Reflect(&models.OutfitPlan{})
	// gojsonschema only understands drafts up to 7
	s.Version = ""

	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode outfit plan schema: %w", err)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to compile outfit plan schema: %w", err)
	}

	return &planValidator{schema: schema}, nil
}

// Validate returns nil when doc matches the plan schema, or an error listing every violation
func (v *planValidator) Validate(doc []byte) error {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return err
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		problems = append(problems, e.String())
	}
	return fmt.Errorf("schema violations: %s", strings.Join(problems, "; "))
}

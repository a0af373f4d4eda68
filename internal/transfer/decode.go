// ABOUTME: Import document decoding with structural validation.
// ABOUTME: A CUE schema checks the three required lists before records are decoded.
package transfer

import (
	"encoding/json"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"

	"github.com/harperreed/mtbmaint/internal/models"
)

// RequiredFields are the top-level lists every snapshot document carries.
var RequiredFields = []string{"bikes", "maintenanceLogs", "rides"}

// snapshotSchema accepts any object holding the three lists of objects.
// Other top-level fields are allowed and kept.
const snapshotSchema = `
bikes: [...{...}]
maintenanceLogs: [...{...}]
rides: [...{...}]
`

// Decode parses an import document. Input that is not JSON fails with
// ErrParse; JSON of the wrong shape fails with ErrInvalidFormat.
func Decode(raw []byte) (*models.Snapshot, error) {
	if !json.Valid(raw) {
		return nil, newError(KindParse, fmt.Errorf("input is not valid JSON"))
	}

	if err := validateShape(raw); err != nil {
		return nil, newError(KindInvalidFormat, err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, newError(KindInvalidFormat, fmt.Errorf("decode records: %w", err))
	}
	return &snap, nil
}

func validateShape(raw []byte) error {
	expr, err := cuejson.Extract("import.json", raw)
	if err != nil {
		return fmt.Errorf("extract document: %w", err)
	}

	ctx := cuecontext.New()
	doc := ctx.BuildExpr(expr)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("build document: %w", err)
	}
	if doc.Kind() != cue.StructKind {
		return fmt.Errorf("document is a %s, not an object", doc.Kind())
	}

	for _, field := range RequiredFields {
		if !doc.LookupPath(cue.ParsePath(field)).Exists() {
			return fmt.Errorf("missing required field %q", field)
		}
	}

	schema := ctx.CompileString(snapshotSchema)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	if err := schema.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("validate document: %w", err)
	}
	return nil
}

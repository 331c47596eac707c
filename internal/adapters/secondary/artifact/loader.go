package artifact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"ct-price-predictor/internal/core/domain"
	"ct-price-predictor/internal/core/ports/output"
)

// Loader reads tree-ensemble artifacts from disk.
type Loader struct {
	schema *jsonschema.Schema
}

func NewLoader() (*Loader, error) {
	schema, err := compileSchema()
	if err != nil {
		return nil, fmt.Errorf("compile artifact schema: %w", err)
	}
	return &Loader{schema: schema}, nil
}

func (l *Loader) Load(path string) (ports.Regressor, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	e, err := l.Parse(raw)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"path":     path,
		"kind":     e.kind,
		"trees":    len(e.trees),
		"features": len(e.features),
	}).Debug("model artifact loaded")
	return e, nil
}

// Parse decodes an artifact already in memory.
func (l *Loader) Parse(raw []byte) (*Ensemble, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: not a JSON document", domain.ErrCorruptArtifact)
	}
	if format := gjson.GetBytes(raw, "format").String(); format != formatMarker {
		return nil, fmt.Errorf("%w: format %q", domain.ErrIncompatible, format)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic interface{}
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptArtifact, err)
	}
	if err := l.schema.Validate(generic); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIncompatible, err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptArtifact, err)
	}
	return newEnsemble(doc)
}

// Package prompt holds the critique prompt assets. The embedded copies can be
// overridden file by file from a prompt directory without rebuilding.
package prompt

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"essay-feedback/api/internal/essay/types"
)

const (
	CritiqueSystemFile = "critique.system.txt"
	CritiqueUserFile   = "critique.user.txt"
)

var (
	//go:embed critique.system.txt
	critiqueSystem string
	//go:embed critique.user.txt
	critiqueUser string
	//go:embed critique.schema.json
	CritiqueSchema []byte
)

var embedded = map[string]string{
	CritiqueSystemFile: critiqueSystem,
	CritiqueUserFile:   critiqueUser,
}

// Loader resolves prompt files, preferring Dir when set.
type Loader struct {
	Dir string
}

func (l Loader) load(name string) (string, error) {
	if l.Dir != "" {
		p := filepath.Join(l.Dir, name)
		if b, err := os.ReadFile(p); err == nil && len(bytes.TrimSpace(b)) > 0 {
			return strings.TrimSpace(string(b)), nil
		}
	}
	s, ok := embedded[name]
	if !ok {
		return "", fmt.Errorf("prompt %q not found", name)
	}
	return strings.TrimSpace(s), nil
}

// Critique renders the system and user messages for one essay.
func (l Loader) Critique(in types.CritiqueRequest) (system, user string, err error) {
	system, err = l.load(CritiqueSystemFile)
	if err != nil {
		return "", "", err
	}
	system += "\n" + string(CritiqueSchema)

	tmplText, err := l.load(CritiqueUserFile)
	if err != nil {
		return "", "", err
	}
	tmpl, err := template.New(CritiqueUserFile).Parse(tmplText)
	if err != nil {
		return "", "", fmt.Errorf("parse %s: %w", CritiqueUserFile, err)
	}

	if strings.TrimSpace(in.TextType) == "" {
		in.TextType = "narrative"
	}
	if strings.TrimSpace(in.AssistanceLevel) == "" {
		in.AssistanceLevel = "moderate"
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, in); err != nil {
		return "", "", fmt.Errorf("render %s: %w", CritiqueUserFile, err)
	}
	return system, buf.String(), nil
}

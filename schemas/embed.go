// Package schemas holds the JSON Schema contracts for slidetheory artifacts.
package schemas

import "embed"

// Schema file names
const (
	SlideBlueprint = "slide_blueprint.schema.json"
	QualityResult  = "quality_result.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Read returns the content of an embedded schema file
func Read(name string) (string, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Names lists the embedded schema files
func Names() []string {
	return []string{SlideBlueprint, QualityResult}
}

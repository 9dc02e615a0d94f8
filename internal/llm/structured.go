package llm

import (
	"fmt"
	"strings"
)

// OutputSchema describes the JSON object a structured prompt asks the model to return
type OutputSchema struct {
	Name        string        // Schema name (e.g., "SlideBlueprint")
	Description string        // Preamble describing the task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the structured output
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint shown to the model
	Description string // Description for the model
	Required    bool   // Whether this field is required
}

// BuildStructuredPrompt constructs a prompt from a schema, task instructions and the input brief
func BuildStructuredPrompt(schema OutputSchema, instructions, input string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	if instructions != "" {
		sb.WriteString(instructions)
		sb.WriteString("\n\n")
	}

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = `"string"`
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		fmt.Fprintf(&sb, "  %q: %s%s", field.Name, typeHint, requiredHint)
		if field.Description != "" {
			fmt.Fprintf(&sb, " // %s", field.Description)
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	sb.WriteString("Brief:\n\"\"\"\n")
	sb.WriteString(input)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// SlideBlueprintSchema returns the output schema for a single consulting slide
func SlideBlueprintSchema() OutputSchema {
	return OutputSchema{
		Name: "SlideBlueprint",
		Description: `You are an expert strategy consultant. Create slides in McKinsey/BCG style:
an action title that states the insight, a synthesized key message, and MECE supporting points that each say why they matter.`,
		Fields: []SchemaField{
			{Name: "title", Type: `"string"`, Description: "Action title, 8-14 words, one complete sentence with a metric", Required: true},
			{Name: "subtitle", Type: `"string"`, Description: "Optional scope or time frame"},
			{Name: "layout", Type: `"executive-summary" | "issue-tree" | "2x2-matrix" | "waterfall" | "process-flow" | "comparison"`, Required: true},
			{Name: "keyMessage", Type: `"string"`, Description: "The single conclusion the audience should remember", Required: true},
			{Name: "supportingPoints", Type: `["string"]`, Description: "3-4 mutually exclusive points, each stating its implication", Required: true},
			{Name: "dataHighlights", Type: `[{"metric": "string", "context": "string"}]`, Description: "Formatted metrics (15%, $2M) with what they mean"},
			{Name: "visualElements", Type: `{"chartType": "string", "calloutBoxes": ["string"], "icons": ["string"]}`, Description: `Use chartType "none" when no chart fits`},
			{Name: "slideStructure", Type: `{"header": "string", "subheader": "string", "mainContent": "string", "footer": "string"}`},
			{Name: "imagePrompt", Type: `"string"`, Description: "Optional description of a supporting visual"},
		},
	}
}

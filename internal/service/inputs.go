package service

import (
	"encoding/json"
	"regexp"
	"strings"
)

// credentialPattern matches field names that are connectors rather than user
// inputs; they are excluded from the detected input list.
var credentialPattern = regexp.MustCompile(`(?i)token|key|secret|oauth|bearer|auth|credential|password`)

var placeholderPattern = regexp.MustCompile(`<__PLACEHOLDER_VALUE__(.+?)__>`)

var webhookBodyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$json\.body\.([a-zA-Z_][a-zA-Z0-9_]*)`),
	regexp.MustCompile(`\$json\["body"\]\["([a-zA-Z_][a-zA-Z0-9_]*)"\]`),
	regexp.MustCompile(`\$\('Webhook'\)\.(?:item|first)\(\)\.json\.body\.([a-zA-Z_][a-zA-Z0-9_]*)`),
}

// fileProcessingNodes are workflow node types that read an uploaded file.
var fileProcessingNodes = map[string]bool{
	"n8n-nodes-base.extractFromFile": true,
	"n8n-nodes-base.readPdf":         true,
	"n8n-nodes-base.readBinaryFile":  true,
	"n8n-nodes-base.spreadsheetFile": true,
}

var nonVariableChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)
var camelBoundary = regexp.MustCompile(`([A-Z])`)

// DetectRequiredInputs scans a workflow definition for the values a runner
// must supply: placeholder markers, webhook body fields (credential-looking
// names excluded) and file inputs from file-processing nodes.
func DetectRequiredInputs(workflow string) []string {
	seen := map[string]bool{}
	var inputs []string
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		inputs = append(inputs, name)
	}

	for _, match := range placeholderPattern.FindAllStringSubmatch(workflow, -1) {
		add(placeholderToVariable(match[1]))
	}

	for _, pattern := range webhookBodyPatterns {
		for _, match := range pattern.FindAllStringSubmatch(workflow, -1) {
			field := match[1]
			if credentialPattern.MatchString(field) {
				continue
			}
			add(fieldToVariable(field))
		}
	}

	if hasFileProcessingNode(workflow) {
		add("FILE_INPUT")
	}
	return inputs
}

// placeholderToVariable turns a placeholder description into a variable name:
// "Job title for the position" -> "JOB_TITLE_FOR_THE_POSITION".
func placeholderToVariable(description string) string {
	name := strings.Join(strings.Fields(description), "_")
	name = nonVariableChars.ReplaceAllString(name, "")
	return strings.ToUpper(name)
}

// fieldToVariable converts a camelCase field to SCREAMING_SNAKE_CASE.
func fieldToVariable(field string) string {
	name := camelBoundary.ReplaceAllString(field, "_$1")
	name = strings.ToUpper(name)
	return strings.TrimPrefix(name, "_")
}

func hasFileProcessingNode(workflow string) bool {
	var parsed struct {
		Nodes []struct {
			Type string `json:"type"`
		} `json:"nodes"`
	}
	if err := json.Unmarshal([]byte(workflow), &parsed); err != nil {
		return false
	}
	for _, node := range parsed.Nodes {
		if fileProcessingNodes[node.Type] {
			return true
		}
	}
	return false
}

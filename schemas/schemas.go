// Package schemas embeds the JSON Schemas for files the CLI and API accept.
package schemas

import "embed"

// LabeledExamplesFile is the schema for labeled example import files.
const LabeledExamplesFile = "labeled_examples.schema.json"

//go:embed *.schema.json
var files embed.FS

// Load returns the raw content of an embedded schema file.
func Load(name string) ([]byte, error) {
	return files.ReadFile(name)
}

// LabeledExamples returns the labeled example import schema.
func LabeledExamples() []byte {
	data, err := files.ReadFile(LabeledExamplesFile)
	if err != nil {
		panic("labeled examples schema missing from embedded files: " + err.Error())
	}
	return data
}

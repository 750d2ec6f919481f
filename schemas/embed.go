// Package schemas embeds the JSON Schema documents used to validate persisted data.
package schemas

import "embed"

// FS holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS

// ResumeDocument is the file name of the résumé document schema.
const ResumeDocument = "resume_document.schema.json"

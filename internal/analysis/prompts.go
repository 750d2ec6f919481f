package analysis

import (
	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/logger"
)

var priorityRule = `Priorities and importance are exactly one of "high", "medium", "low".`

func analyzePrompt(resume, jobDescription string) llm.Prompt {
	return llm.Prompt{
		Task: `You are an experienced recruiter and applicant-tracking-system specialist.
Score the résumé below for content quality, formatting and ATS compatibility.
When a job description is given, judge ATS compatibility and keywords against it.`,
		Fields: []llm.Field{
			{Name: "overall_score", Type: "integer 0-100", Required: true},
			{Name: "scores", Type: `{"content": integer 0-100, "format": integer 0-100, "ats_compatibility": integer 0-100}`, Required: true},
			{Name: "improvement_suggestions", Type: `[{"suggestion": "string", "explanation": "string", "priority": "high|medium|low"}]`, Required: true},
			{Name: "strengths", Type: `["string"]`, Required: true},
			{Name: "ats_analysis", Type: `{"detected_keywords": ["string"]}`, Required: true},
		},
		Rules: []string{
			"All scores are whole numbers between 0 and 100.",
			priorityRule,
			"Base every finding on the résumé text only; do not invent experience.",
		},
		Inputs: []llm.Input{
			{Label: "Resume", Text: resume},
			{Label: "Job description", Text: logger.Truncate(jobDescription, maxInputChars)},
		},
	}
}

func matchPrompt(resume, jobDescription string) llm.Prompt {
	return llm.Prompt{
		Task: `You are an expert career assistant. Evaluate how well the résumé matches the job description.
List the job's skills that the résumé shows and those it lacks, then recommend concrete changes.`,
		Fields: []llm.Field{
			{Name: "match_percentage", Type: "integer 0-100", Required: true},
			{Name: "skills_match", Type: `{"matched_skills": ["string"], "missing_skills": ["string"]}`, Required: true},
			{Name: "recommendations", Type: `[{"title": "string", "description": "string", "importance": "high|medium|low"}]`, Required: true},
		},
		Rules: []string{
			"match_percentage is a whole number between 0 and 100.",
			priorityRule,
			"Only count a skill as matched when the résumé states it explicitly.",
		},
		Inputs: []llm.Input{
			{Label: "Resume", Text: resume},
			{Label: "Job description", Text: logger.Truncate(jobDescription, maxInputChars)},
		},
	}
}

func structurePrompt(text string) llm.Prompt {
	return llm.Prompt{
		Task: `You are an expert résumé parser. Convert the raw résumé text below into structured data.
COPY TEXT VERBATIM - do not paraphrase, summarize, or reword.`,
		Fields: []llm.Field{
			{Name: "name", Type: `"string"`, Description: "short label for the document, e.g. the candidate's target role"},
			{Name: "personal_info", Type: `{"name": "string", "email": "string", "phone": "string", "job_title": "string", "location": "string", "linkedin": "string", "website": "string", "github": "string"}`, Required: true},
			{Name: "summary", Type: `"string"`},
			{Name: "experience", Type: `[{"title": "string", "company": "string", "location": "string", "start_date": "string", "end_date": "string", "current": boolean, "responsibilities": ["string"]}]`, Required: true},
			{Name: "education", Type: `[{"institution": "string", "degree": "string", "field_of_study": "string", "location": "string", "start_date": "string", "end_date": "string", "current": boolean, "description": "string"}]`, Required: true},
			{Name: "skills", Type: `["string"]`, Required: true},
		},
		Rules: []string{
			`Use "" for missing text fields and [] for missing lists.`,
			"Set current to true only when the text says the position or study is ongoing.",
			"Keep dates as written in the text.",
		},
		Inputs: []llm.Input{{Label: "Resume text", Text: logger.Truncate(text, maxInputChars)}},
	}
}

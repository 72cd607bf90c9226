package services

import "fmt"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildReviewPrompt creates the prompt for a resume critique. When a job
// description is supplied the model is also asked for alignment suggestions.
func (pb *PromptBuilder) BuildReviewPrompt(resumeText, jobDesc string) string {
	prompt := fmt.Sprintf(`You are a resume reviewer. Analyze the following resume and return a JSON object with the following fields:
"score": integer (score out of 100),
"suggestions": list of 3 suggestions to improve the resume for a Software Engineering role,
"summary": a brief summary of the resume's strengths and weaknesses.
Format your response as valid JSON only.

Resume:
%s`, resumeText)

	if jobDesc != "" {
		prompt += fmt.Sprintf(`

Job Description:
%s
Also include a field "job_match_suggestions": list of suggestions to better align the resume with the job description.`, jobDesc)
	}

	return prompt
}

// BuildJobMatchPrompt creates the prompt comparing a resume against a job
// description.
func (pb *PromptBuilder) BuildJobMatchPrompt(resumeText, jobDesc string) string {
	return fmt.Sprintf(`You are an expert resume reviewer. Compare the following resume and job description.
Respond ONLY with a valid JSON object, no explanations, no markdown, no code block, no extra text.
The JSON must have these keys:
  "matching_keywords": (list of keywords/skills present in both),
  "missing_keywords": (list of important keywords from the job description missing in the resume),
  "suggestions": (list of 3 suggestions to better align the resume with the job description).
Example:
{
  "matching_keywords": ["Python", "project management"],
  "missing_keywords": ["AWS", "Docker"],
  "suggestions": [
    "Add AWS experience to your resume.",
    "Highlight any Docker usage.",
    "Emphasize relevant project management achievements."
  ]
}
Now, here is the data:
Resume:
%s

Job Description:
%s`, resumeText, jobDesc)
}

package service

import (
	"log/slog"
	"os"
	"strings"
)

// PlatformLabels maps the stored platform enum to the label used in scoring
// prompts.
var PlatformLabels = map[string]string{
	"facebook":        "Facebook",
	"instagram":       "Instagram",
	"google_business": "Google Business Profile (GBP)",
}

func PlatformLabel(platform string) string {
	if label, ok := PlatformLabels[platform]; ok {
		return label
	}
	return platform
}

// BuiltinRubric is the six-dimension scoring rubric used when no external
// rubric file is configured.
const BuiltinRubric = `## Hook Strength (1-10)
- 9-10: Immediately stops scroll — question, bold claim, surprising stat, or relatable pain point
- 7-8: Clear and relevant, draws reader in
- 4-6: Generic opener ("At [Company], we pride ourselves...")
- 1-3: No hook, starts with company name or boring statement

## Local Specificity (1-10)
- 9-10: Mentions specific city, neighborhood, or local reference; feels written for THIS company
- 7-8: Includes company name and city naturally
- 4-6: Generic but could have a city swapped in
- 1-3: Could be any HVAC company anywhere

## Value Delivery (1-10)
- 9-10: Teaches something useful, solves a problem, or entertains
- 7-8: Has clear value proposition beyond just "hire us"
- 4-6: Mostly promotional but has one useful element
- 1-3: Pure advertisement, zero value to reader

## CTA Clarity (1-10)
- 9-10: Clear, specific action ("Call us at [number]", "Comment your zip code", "Save this for summer")
- 7-8: Implied action that's easy to take
- 4-6: Vague ("Contact us today", "Learn more")
- 1-3: No CTA or confusing CTA

## Platform Fit (1-10)
- Facebook: 150-300 words, conversational, community-focused, 3-5 relevant hashtags
- Instagram: 150 words max, strong first line (truncates at first line), 5-10 focused hashtags
- GBP (Google Business Profile): 150-300 chars, action-oriented, no hashtags, uses CTA button context
- Score based on how well the post matches the specs for its specific platform

## Authenticity (1-10)
- 9-10: Sounds like a real local business owner wrote it; natural, slightly imperfect voice
- 7-8: Sounds human, conversational
- 4-6: Slightly corporate or templated
- 1-3: Obviously AI-generated — overly polished, generic phrases ("In today's fast-paced world"), or reads like a brochure`

// LoadRubric returns the rubric text from path when the file exists,
// otherwise the built-in rubric.
func LoadRubric(path string) string {
	if path == "" {
		return BuiltinRubric
	}
	content, err := os.ReadFile(path)
	if err != nil {
		slog.Info("rubric file not readable, using built-in rubric", "path", path)
		return BuiltinRubric
	}
	return strings.TrimSpace(string(content))
}

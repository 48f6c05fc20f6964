package analysis

import (
	"fmt"
	"strings"

	"github.com/jonathan/fastfolio/internal/prompts"
	"github.com/jonathan/fastfolio/internal/types"
)

const (
	notProvided   = "Not provided"
	noCertificate = "No certificates were provided."
)

// BuildPrompt assembles the analysis prompt. The order is fixed: profile summary,
// certificate content, job-role clause, job-description clause, output format,
// then exactly one of the ATS or standard schema blocks.
func BuildPrompt(profile *types.StudentProfile, docs []types.ExtractedDocument, atsFriendly bool) string {
	var sb strings.Builder

	sb.WriteString(prompts.Format(prompts.MustGet(prompts.ProfileSummary), map[string]string{
		"Name":           orNotProvided(profile.Name),
		"Email":          orNotProvided(profile.Email),
		"Phone":          orNotProvided(profile.Phone),
		"LinkedIn":       orNotProvided(profile.LinkedIn),
		"GitHub":         orNotProvided(profile.GitHub),
		"Education":      formatList(profile.Education),
		"Projects":       formatList(profile.Projects),
		"Achievements":   formatList(profile.Achievements),
		"Skills":         formatList(profile.Skills),
		"WorkExperience": formatList(profile.WorkExperience),
	}))

	sb.WriteString(prompts.Format(prompts.MustGet(prompts.Certificates), map[string]string{
		"Certificates": formatDocuments(docs),
	}))

	if profile.HasJobRole() {
		sb.WriteString(prompts.Format(prompts.MustGet(prompts.JobRole), map[string]string{
			"JobRole": strings.TrimSpace(profile.JobRole),
		}))
	}

	if profile.HasJobDescription() {
		sb.WriteString(prompts.Format(prompts.MustGet(prompts.JobDescription), map[string]string{
			"JobDescription": profile.JobDescription,
		}))
	}

	sb.WriteString(prompts.MustGet(prompts.OutputFormat))
	if atsFriendly {
		sb.WriteString(prompts.MustGet(prompts.SchemaATS))
	} else {
		sb.WriteString(prompts.MustGet(prompts.SchemaStandard))
	}

	return sb.String()
}

func orNotProvided(value string) string {
	if strings.TrimSpace(value) == "" {
		return notProvided
	}
	return value
}

func formatList(items []string) string {
	if len(items) == 0 {
		return notProvided
	}
	return strings.Join(items, "; ")
}

// formatDocuments renders every document verbatim, in order
func formatDocuments(docs []types.ExtractedDocument) string {
	if len(docs) == 0 {
		return noCertificate
	}

	var sb strings.Builder
	for i, doc := range docs {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("--- Certificate %d: %s (%s) ---\n", i+1, doc.Path, doc.Type))
		sb.WriteString(doc.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}

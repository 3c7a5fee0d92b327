package prompt

import "github.com/reteki/outreach/internal/llm"

// Response field names.
const (
	FieldShouldGenerate = "shouldGenerate"
	FieldMessage        = "message"
)

// MessageSchema is the shape every generation answer must have.
func MessageSchema() *llm.Schema {
	return &llm.Schema{
		Type: llm.TypeObject,
		Properties: map[string]*llm.Schema{
			FieldShouldGenerate: {Type: llm.TypeBoolean},
			FieldMessage:        {Type: llm.TypeString},
		},
		Required: []string{FieldShouldGenerate, FieldMessage},
		Order:    []string{FieldShouldGenerate, FieldMessage},
	}
}

// ProfileRequired lists the profile fields an extraction answer must carry.
var ProfileRequired = []string{
	"name",
	"jobTitle",
	"companyName",
	"industry",
	"activityOrAchievement",
	"mutualConnection",
}

// ProfileSchema is the shape of a profile extraction answer.
func ProfileSchema() *llm.Schema {
	return &llm.Schema{
		Type: llm.TypeObject,
		Properties: map[string]*llm.Schema{
			"name":        {Type: llm.TypeString},
			"jobTitle":    {Type: llm.TypeString},
			"companyName": {Type: llm.TypeString},
			"industry":    {Type: llm.TypeString},
			"activityOrAchievement": {
				Type:        llm.TypeString,
				Description: "Summarize recent posts, comments, or company news found in the text.",
			},
			"mutualConnection": {
				Type:        llm.TypeString,
				Description: "Find the name of a mutual connection if mentioned.",
			},
			"additionalContext": {
				Type:        llm.TypeString,
				Description: "Any additional relevant context or information found.",
			},
			"urls": {
				Type:        llm.TypeArray,
				Items:       &llm.Schema{Type: llm.TypeString},
				Description: "Any URLs found in the text.",
			},
		},
		Required: ProfileRequired,
		Order: append(append([]string{}, ProfileRequired...),
			"additionalContext", "urls"),
	}
}

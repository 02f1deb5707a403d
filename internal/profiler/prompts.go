package profiler

import (
	"encoding/json"
	"fmt"

	"github.com/BerylCAtieno/brand-intel-agent/internal/models"
)

const snapshotSystemPrompt = "You are an expert B2B brand and digital marketing analyst. Analyze brands and provide structured insights about their business, positioning, and visibility opportunities. Always respond with valid JSON only, no additional text."

const salesKitSystemPrompt = "You are a B2B sales strategist with deep expertise in identifying buyer personas, pain points, and crafting effective sales messaging. Always respond with valid JSON only, no additional text."

const snapshotShape = `{
  "whatTheyDo": "Brief description of what the brand does",
  "category": "Industry or business category",
  "primaryOfferings": ["Offering 1", "Offering 2", "Offering 3"],
  "targetSegments": ["Segment 1", "Segment 2"],
  "brandVoice": "Description of the brand's voice and tone",
  "visibilityOpportunities": ["Opportunity 1", "Opportunity 2", "Opportunity 3"]
}`

const salesKitShape = `{
  "buyerRoles": ["Role 1", "Role 2", "Role 3"],
  "painPoints": ["Pain point 1", "Pain point 2", "Pain point 3"],
  "valueAngles": ["Value angle 1", "Value angle 2", "Value angle 3"],
  "coldEmailOpener": "A compelling cold email opening line (1-2 sentences)",
  "linkedInDMMessage": "A personalized LinkedIn DM message (2-3 sentences)",
  "discoveryQuestions": ["Question 1", "Question 2", "Question 3", "Question 4"],
  "thoughtLeadershipPoint": "One thought-leadership talking point (1-2 sentences)"
}`

func buildSnapshotPrompt(brand string) string {
	return fmt.Sprintf(`Analyze the brand "%s" and provide a Brand Visibility Snapshot in the following JSON format:
%s

Provide 2-3 visibility opportunities. Return only the JSON object, no markdown formatting.`, brand, snapshotShape)
}

// buildSearchSnapshotPrompt folds the analyst instructions into a single
// prompt because search models take no system message.
func buildSearchSnapshotPrompt(brand string) string {
	return fmt.Sprintf(`%s

Search the web for current information about the brand "%s" (official website, recent news, product pages) before answering.

%s

If you cite sources, put them after the JSON object.`, snapshotSystemPrompt, brand, buildSnapshotPrompt(brand))
}

func buildSalesKitPrompt(brand string, snapshot *models.BrandSnapshot) (string, error) {
	snapshotJSON, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal brand snapshot: %w", err)
	}

	return fmt.Sprintf(`Based on this Brand Visibility Snapshot for "%s":
%s

Create a Sales Starter Kit in the following JSON format:
%s

Return only the JSON object, no markdown formatting.`, brand, snapshotJSON, salesKitShape), nil
}

package models

// BrandSnapshot is the descriptive profile of a brand produced by the first
// generation step.
type BrandSnapshot struct {
	WhatTheyDo              string   `json:"whatTheyDo" jsonschema:"minLength=1"`
	Category                string   `json:"category" jsonschema:"minLength=1"`
	PrimaryOfferings        []string `json:"primaryOfferings" jsonschema:"minItems=1"`
	TargetSegments          []string `json:"targetSegments" jsonschema:"minItems=1"`
	BrandVoice              string   `json:"brandVoice" jsonschema:"minLength=1"`
	VisibilityOpportunities []string `json:"visibilityOpportunities" jsonschema:"minItems=1"`
}

// SalesStarterKit is the B2B sales messaging derived from a BrandSnapshot.
type SalesStarterKit struct {
	BuyerRoles             []string `json:"buyerRoles" jsonschema:"minItems=1"`
	PainPoints             []string `json:"painPoints" jsonschema:"minItems=1"`
	ValueAngles            []string `json:"valueAngles" jsonschema:"minItems=1"`
	ColdEmailOpener        string   `json:"coldEmailOpener" jsonschema:"minLength=1"`
	LinkedInDMMessage      string   `json:"linkedInDMMessage" jsonschema:"minLength=1"`
	DiscoveryQuestions     []string `json:"discoveryQuestions" jsonschema:"minItems=1"`
	ThoughtLeadershipPoint string   `json:"thoughtLeadershipPoint" jsonschema:"minLength=1"`
}

type GenerateRequest struct {
	Brand any `json:"brand"`
}

type GenerateResponse struct {
	BrandSnapshot   BrandSnapshot   `json:"brandSnapshot"`
	SalesStarterKit SalesStarterKit `json:"salesStarterKit"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

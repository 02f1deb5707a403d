package profiler

import (
	"context"
	"sync"
)

type jsonCall struct {
	System string
	User   string
}

// fakeClient replays scripted responses for CompleteJSON in call order.
type fakeClient struct {
	mu        sync.Mutex
	responses []fakeResponse
	calls     []jsonCall
}

type fakeResponse struct {
	text string
	err  error
}

func (f *fakeClient) CompleteJSON(_ context.Context, system, user string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, jsonCall{System: system, User: user})
	if len(f.responses) == 0 {
		return "", nil
	}
	r := f.responses[0]
	f.responses = f.responses[1:]
	return r.text, r.err
}

func (f *fakeClient) Model() string { return "fake-model" }
func (f *fakeClient) Close() error  { return nil }

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeSearch struct {
	text    string
	err     error
	prompts []string
}

func (f *fakeSearch) CompleteWithSearch(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

const validSnapshot = `{
  "whatTheyDo": "Acme Robotics builds autonomous warehouse robots.",
  "category": "Industrial automation",
  "primaryOfferings": ["Picking robots", "Fleet management software", "Integration services"],
  "targetSegments": ["3PL providers", "E-commerce fulfillment centers"],
  "brandVoice": "Confident, technical, pragmatic",
  "visibilityOpportunities": ["Publish ROI case studies", "Speak at logistics trade shows"]
}`

const validSalesKit = `{
  "buyerRoles": ["VP of Operations", "Head of Supply Chain", "CTO"],
  "painPoints": ["Labor shortages", "Rising fulfillment costs", "Peak season volatility"],
  "valueAngles": ["Faster picking", "Predictable costs", "Quick deployment"],
  "coldEmailOpener": "Peak season doesn't have to mean overtime.",
  "linkedInDMMessage": "Saw your team is scaling fulfillment. We help warehouses pick 3x faster.",
  "discoveryQuestions": ["How do you staff peaks?", "What is your pick rate?", "Which WMS do you run?", "Who owns automation?"],
  "thoughtLeadershipPoint": "Automation is now a resilience play, not just a cost play."
}`

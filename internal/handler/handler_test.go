package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/brand-intel-agent/internal/apperrors"
	"github.com/BerylCAtieno/brand-intel-agent/internal/handler"
	"github.com/BerylCAtieno/brand-intel-agent/internal/metrics"
	"github.com/BerylCAtieno/brand-intel-agent/internal/models"
)

type mockGenerator struct {
	generateFn func(ctx context.Context, brand string) (*models.GenerateResponse, error)
	calls      []string
}

func (m *mockGenerator) Generate(ctx context.Context, brand string) (*models.GenerateResponse, error) {
	m.calls = append(m.calls, brand)
	if m.generateFn != nil {
		return m.generateFn(ctx, brand)
	}
	return sampleResponse(), nil
}

func sampleResponse() *models.GenerateResponse {
	return &models.GenerateResponse{
		BrandSnapshot: models.BrandSnapshot{
			WhatTheyDo:              "Builds warehouse robots",
			Category:                "Industrial automation",
			PrimaryOfferings:        []string{"Picking robots", "Fleet software"},
			TargetSegments:          []string{"3PLs"},
			BrandVoice:              "Technical",
			VisibilityOpportunities: []string{"Case studies", "Trade shows"},
		},
		SalesStarterKit: models.SalesStarterKit{
			BuyerRoles:             []string{"VP Operations"},
			PainPoints:             []string{"Labor shortages"},
			ValueAngles:            []string{"Throughput"},
			ColdEmailOpener:        "Peak season without overtime.",
			LinkedInDMMessage:      "Saw you are scaling fulfillment.",
			DiscoveryQuestions:     []string{"How do you staff peaks?"},
			ThoughtLeadershipPoint: "Automation is resilience.",
		},
	}
}

var _ = Describe("BrandHandler", func() {
	var (
		router *gin.Engine
		gen    *mockGenerator
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		gen = &mockGenerator{}
		h := handler.NewBrandHandler(gen, zap.NewNop(), 5*time.Second)
		router = handler.NewRouter(h, zap.NewNop(), handler.RouterConfig{MetricsHandler: metrics.New().Handler()})
	})

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/generate", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	decodeError := func(w *httptest.ResponseRecorder) string {
		var resp map[string]string
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		return resp["error"]
	}

	Describe("POST /generate", func() {
		It("returns both artifacts on success", func() {
			w := post(`{"brand":"Acme Robotics"}`)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(gen.calls).To(Equal([]string{"Acme Robotics"}))

			var resp map[string]map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp).To(HaveKey("brandSnapshot"))
			Expect(resp).To(HaveKey("salesStarterKit"))
			Expect(resp["brandSnapshot"]["whatTheyDo"]).To(Equal("Builds warehouse robots"))
			Expect(resp["salesStarterKit"]["linkedInDMMessage"]).To(Equal("Saw you are scaling fulfillment."))
			Expect(resp["salesStarterKit"]["discoveryQuestions"]).To(HaveLen(1))
		})

		DescribeTable("rejects missing or invalid brand with 400 and no generation",
			func(body string) {
				w := post(body)

				Expect(w.Code).To(Equal(http.StatusBadRequest))
				Expect(decodeError(w)).To(Equal("Brand name is required"))
				Expect(gen.calls).To(BeEmpty())
			},
			Entry("empty string", `{"brand":""}`),
			Entry("whitespace", `{"brand":"   "}`),
			Entry("missing field", `{}`),
			Entry("null", `{"brand":null}`),
			Entry("number", `{"brand":42}`),
			Entry("array", `{"brand":["Acme"]}`),
			Entry("object", `{"brand":{"name":"Acme"}}`),
			Entry("malformed JSON", `{"brand":`),
			Entry("empty body", ``),
		)

		It("maps generator validation errors to 400", func() {
			gen.generateFn = func(context.Context, string) (*models.GenerateResponse, error) {
				return nil, apperrors.Validation("Brand name is required")
			}

			w := post(`{"brand":"x"}`)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeError(w)).To(Equal("Brand name is required"))
		})

		DescribeTable("collapses generation failures to 500 with the error message",
			func(err error, message string) {
				gen.generateFn = func(context.Context, string) (*models.GenerateResponse, error) {
					return nil, err
				}

				w := post(`{"brand":"Acme Robotics"}`)

				Expect(w.Code).To(Equal(http.StatusInternalServerError))
				Expect(decodeError(w)).To(Equal(message))
			},
			Entry("backend", apperrors.Backend(errors.New("401 Unauthorized"), "openai chat completion"), "openai chat completion: 401 Unauthorized"),
			Entry("generation", apperrors.Generation("failed to generate brand snapshot"), "failed to generate brand snapshot"),
			Entry("parse", apperrors.Parse(errors.New("unexpected end of JSON input"), "failed to parse sales starter kit"), "failed to parse sales starter kit: unexpected end of JSON input"),
			Entry("unclassified", errors.New("boom"), "boom"),
		)

		It("bounds generation with the configured timeout", func() {
			var deadline time.Time
			var hasDeadline bool
			gen.generateFn = func(ctx context.Context, _ string) (*models.GenerateResponse, error) {
				deadline, hasDeadline = ctx.Deadline()
				return sampleResponse(), nil
			}

			post(`{"brand":"Acme"}`)

			Expect(hasDeadline).To(BeTrue())
			Expect(time.Until(deadline)).To(BeNumerically("<=", 5*time.Second))
		})
	})

	Describe("GET /", func() {
		It("serves the UI", func() {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(ContainSubstring("text/html"))
			Expect(w.Body.String()).To(ContainSubstring("Brand Intelligence"))
			Expect(w.Body.String()).To(ContainSubstring(`fetch('/generate'`))
		})
	})

	Describe("GET /health", func() {
		It("returns OK", func() {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(Equal("OK"))
		})
	})

	Describe("GET /metrics", func() {
		It("exposes prometheus metrics when configured", func() {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("brandintel_snapshot_fallbacks_total"))
		})

		It("is absent when metrics are disabled", func() {
			h := handler.NewBrandHandler(gen, zap.NewNop(), 0)
			r := handler.NewRouter(h, zap.NewNop(), handler.RouterConfig{})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})

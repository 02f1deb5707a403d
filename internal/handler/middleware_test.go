package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/BerylCAtieno/brand-intel-agent/internal/handler"
)

var _ = Describe("Middleware", func() {
	var (
		router *gin.Engine
		logs   *observer.ObservedLogs
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		var core zapcore.Core
		core, logs = observer.New(zapcore.InfoLevel)
		logger := zap.New(core)

		router = gin.New()
		router.Use(handler.RequestID())
		router.Use(handler.Recovery(logger))
		router.Use(handler.RequestLogger(logger))
		router.GET("/ok", func(c *gin.Context) {
			c.String(http.StatusOK, handler.RequestIDFrom(c))
		})
		router.GET("/panic", func(c *gin.Context) {
			panic("kaboom")
		})
	})

	It("assigns a request id when none is sent", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

		id := w.Header().Get(handler.RequestIDHeader)
		_, err := uuid.Parse(id)
		Expect(err).NotTo(HaveOccurred())
		Expect(w.Body.String()).To(Equal(id))
	})

	It("propagates an inbound request id", func() {
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set(handler.RequestIDHeader, "req-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Header().Get(handler.RequestIDHeader)).To(Equal("req-123"))
	})

	It("replaces oversized request ids", func() {
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set(handler.RequestIDHeader, strings.Repeat("a", 200))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Header().Get(handler.RequestIDHeader)).To(HaveLen(36))
	})

	It("writes an access log line", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

		entries := logs.FilterMessage("request completed").All()
		Expect(entries).To(HaveLen(1))
		fields := entries[0].ContextMap()
		Expect(fields["path"]).To(Equal("/ok"))
		Expect(fields["status"]).To(BeEquivalentTo(http.StatusOK))
	})

	It("recovers from panics with a JSON 500", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(w.Body.String()).To(MatchJSON(`{"error":"internal server error"}`))
		Expect(logs.FilterMessage("panic recovered").Len()).To(Equal(1))
	})
})

package middleware

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type RateLimiterSuite struct {
	suite.Suite
	logger *slog.Logger
}

func TestRateLimiterSuite(t *testing.T) {
	suite.Run(t, new(RateLimiterSuite))
}

func (s *RateLimiterSuite) SetupTest() {
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *RateLimiterSuite) handler(limit int, window time.Duration) http.Handler {
	limiter := NewRateLimiter(limit, window, s.logger)
	return limiter.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func doRequest(h http.Handler, remoteAddr, forwardedFor string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/verify?q=test", nil)
	req.RemoteAddr = remoteAddr
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func (s *RateLimiterSuite) TestAllowsUpToLimit() {
	h := s.handler(3, time.Minute)

	for i := 0; i < 3; i++ {
		rr := doRequest(h, "203.0.113.7:51234", "")
		s.Equal(http.StatusOK, rr.Code)
	}

	rr := doRequest(h, "203.0.113.7:51234", "")
	s.Equal(http.StatusTooManyRequests, rr.Code)
	s.Equal("0", rr.Header().Get("X-RateLimit-Remaining"))
	s.NotEmpty(rr.Header().Get("Retry-After"))
	s.Contains(rr.Body.String(), "rate_limit_exceeded")
}

func (s *RateLimiterSuite) TestLimitsPerIPIndependently() {
	h := s.handler(1, time.Minute)

	s.Equal(http.StatusOK, doRequest(h, "203.0.113.7:51234", "").Code)
	s.Equal(http.StatusTooManyRequests, doRequest(h, "203.0.113.7:51234", "").Code)
	s.Equal(http.StatusOK, doRequest(h, "198.51.100.9:40000", "").Code)
}

func (s *RateLimiterSuite) TestTrustsForwardedForHeader() {
	h := s.handler(1, time.Minute)

	s.Equal(http.StatusOK, doRequest(h, "10.0.0.1:1000", "203.0.113.7, 10.0.0.1").Code)
	s.Equal(http.StatusTooManyRequests, doRequest(h, "10.0.0.2:2000", "203.0.113.7").Code)
}

func (s *RateLimiterSuite) TestWindowExpiryFreesCapacity() {
	limiter := NewRateLimiter(1, 50*time.Millisecond, s.logger)

	allowed, _, _ := limiter.allow("203.0.113.7", time.Now())
	s.True(allowed)
	allowed, _, _ = limiter.allow("203.0.113.7", time.Now())
	s.False(allowed)

	allowed, remaining, _ := limiter.allow("203.0.113.7", time.Now().Add(time.Second))
	s.True(allowed)
	s.Equal(0, remaining)
}

func (s *RateLimiterSuite) TestEvictsIdleClients() {
	limiter := NewRateLimiter(5, time.Minute, s.logger)
	base := time.Now()

	for i := 0; i < 100; i++ {
		limiter.allow(fmt.Sprintf("203.0.113.%d", i), base)
	}
	limiter.mu.Lock()
	s.Len(limiter.windows, 100)
	limiter.mu.Unlock()

	limiter.allow("198.51.100.1", base.Add(2*time.Minute))

	limiter.mu.Lock()
	s.Len(limiter.windows, 1)
	limiter.mu.Unlock()
}

func (s *RateLimiterSuite) TestSetsRateLimitHeadersOnSuccess() {
	h := s.handler(5, time.Minute)

	rr := doRequest(h, "203.0.113.7:51234", "")
	s.Equal("5", rr.Header().Get("X-RateLimit-Limit"))
	s.Equal("4", rr.Header().Get("X-RateLimit-Remaining"))
	s.NotEmpty(rr.Header().Get("X-RateLimit-Reset"))
}

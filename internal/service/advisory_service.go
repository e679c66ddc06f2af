package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"kyra_advising_backend/internal/config"
	"kyra_advising_backend/pkg/monitoring"

	"golang.org/x/time/rate"
)

// Advisory failure categories. Each maps to a distinct user-facing message
// via ErrorMessage; none of them is allowed to crash the caller.
var (
	ErrAdvisoryConnection = errors.New("advisory service unreachable")
	ErrAdvisoryTimeout    = errors.New("advisory request timed out")
	ErrAdvisoryStatus     = errors.New("advisory request failed")
	ErrAdvisoryMalformed  = errors.New("advisory response malformed")
)

// EmptyResponsePlaceholder is stored when the endpoint answers with an
// empty response field.
const EmptyResponsePlaceholder = "No response received from API."

// AdvisoryService is the outbound client for the external question-answering
// endpoint. Calls are rate limited to MaxCalls per rolling Period; a caller
// over the budget waits instead of failing.
type AdvisoryService struct {
	cfg     config.AdvisoryConfig
	client  *http.Client
	limiter *rate.Limiter
}

func NewAdvisoryService(cfg config.AdvisoryConfig) *AdvisoryService {
	return &AdvisoryService{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(float64(cfg.MaxCalls)/cfg.Period.Seconds()), cfg.MaxCalls),
	}
}

type advisoryRequest struct {
	Question     string `json:"question"`
	Email        string `json:"email"`
	ProjectTitle string `json:"project_title"`
}

type advisoryResponse struct {
	Response *string `json:"response"`
}

// Ask sends the question and returns the response text. Errors are
// categorized; use ErrorMessage for the user-facing string.
func (s *AdvisoryService) Ask(ctx context.Context, email, question, projectTitle string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", ErrAdvisoryConnection, err)
	}

	if projectTitle == "" {
		projectTitle = NoProjectAssigned
	}
	payload, err := json.Marshal(advisoryRequest{
		Question:     strings.TrimSpace(question),
		Email:        strings.TrimSpace(email),
		ProjectTitle: projectTitle,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := s.client.Do(req)
	monitoring.AdvisoryCallDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		if isTimeout(err) {
			return "", fmt.Errorf("%w: %v", ErrAdvisoryTimeout, err)
		}
		return "", fmt.Errorf("%w: %v", ErrAdvisoryConnection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrAdvisoryStatus, resp.StatusCode)
	}

	var body advisoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: %v", ErrAdvisoryMalformed, err)
	}
	if body.Response == nil {
		return "", fmt.Errorf("%w: missing response field", ErrAdvisoryMalformed)
	}
	if *body.Response == "" {
		return EmptyResponsePlaceholder, nil
	}
	return *body.Response, nil
}

// ErrorMessage maps a categorized failure to the text shown (and stored)
// in place of a real response.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrAdvisoryTimeout):
		return "Error: API request timed out. Please try again later."
	case errors.Is(err, ErrAdvisoryConnection):
		return "Error: Unable to connect to the API. Please check your network connection."
	case errors.Is(err, ErrAdvisoryStatus):
		return "Error: API request failed. Please try again later."
	case errors.Is(err, ErrAdvisoryMalformed):
		return "Error: Invalid response format from API."
	default:
		return "Error: Unable to get response from API."
	}
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

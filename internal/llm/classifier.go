package llm

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/taxxyapp/taxxy/internal/common"
	"github.com/taxxyapp/taxxy/internal/model"
	"github.com/taxxyapp/taxxy/internal/relevance"
	"github.com/taxxyapp/taxxy/internal/service"
)

// Confidence policy. A result never reads as 0% confident (indistinguishable
// from total failure) nor 100% (false certainty). The flat failureConfidence
// sits below minConfidence so callers can tell "the model was unsure" apart
// from "the call itself failed".
const (
	minConfidence          = 0.1
	maxConfidence          = 0.95
	failureConfidence      = 0.05
	parseFailureConfidence = 0.15
	defaultConfidence      = 0.2
)

// CorrectionRetriever finds past corrections relevant to a description.
type CorrectionRetriever interface {
	FindRelevantCorrections(ctx context.Context, description, owner string) []relevance.ScoredCorrection
}

// Classifier orchestrates the classification pipeline: retrieve relevant
// corrections, prompt the completion API, parse and repair the response, and
// blend in the correction-derived confidence boost.
type Classifier struct {
	client      Client
	retriever   CorrectionRetriever
	cache       *resultCache
	rateLimiter *rateLimiter
	logger      *slog.Logger
	retryOpts   service.RetryOptions
}

// Config holds configuration for the LLM classifier.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	MaxRetries  int
	RetryDelay  time.Duration
	CacheTTL    time.Duration
	RateLimit   int
	Temperature float64
	MaxTokens   int
}

// NewClassifier creates a classifier backed by the configured provider.
func NewClassifier(cfg Config, retriever CorrectionRetriever, logger *slog.Logger) (*Classifier, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return NewClassifierWithClient(cfg, client, retriever, logger), nil
}

// NewClassifierWithClient creates a classifier around an existing client.
func NewClassifierWithClient(cfg Config, client Client, retriever CorrectionRetriever, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}

	retryOpts := service.RetryOptions{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 3
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = time.Second
	}

	return &Classifier{
		client:      client,
		retriever:   retriever,
		cache:       newResultCache(cfg.CacheTTL),
		rateLimiter: newRateLimiter(cfg.RateLimit),
		logger:      logger,
		retryOpts:   retryOpts,
	}
}

// Classify runs the full pipeline for one transaction description. The error
// is non-nil only for a contract violation (missing owner); every runtime
// failure, including an unreachable completion API, still yields a fully
// populated conservative result.
func (c *Classifier) Classify(ctx context.Context, req model.ClassificationRequest, owner string) (model.ClassificationResult, error) {
	if owner == "" {
		return model.ClassificationResult{}, common.ErrMissingOwner
	}

	matches := c.retriever.FindRelevantCorrections(ctx, req.Description, owner)
	adjustment := relevance.ComputeConfidenceAdjustment(matches, req.Description)

	cacheKey := owner + "\x00" + req.Description
	if cached, found := c.cache.get(cacheKey); found {
		c.logger.Debug("cache hit for description", "owner", owner)
		return cached, nil
	}

	content, err := c.complete(ctx, req, matches)
	if err != nil {
		c.logger.Warn("completion failed, returning minimal-confidence result",
			"error", err,
			"retryable", common.IsRetryable(err),
			"owner", owner)
		return c.failureResult(req.Description, matches, adjustment), nil
	}

	resp, parsed := parseResponse(content)
	if !parsed {
		c.logger.Warn("unparsable completion, using keyword fallback",
			"owner", owner,
			"content_length", len(content))
		resp = fallbackResponse(req.Description)
	}

	result := c.normalize(resp, req.Description, adjustment)
	result.LearnedFrom = len(matches)
	result.CorrectionInfluence = adjustment

	c.cache.set(cacheKey, result)

	c.logger.Info("transaction classified",
		"owner", owner,
		"tag", result.Tag,
		"category", result.Category,
		"purpose", result.Purpose,
		"confidence", result.Confidence,
		"learned_from", result.LearnedFrom)

	return result, nil
}

// complete sends the prompt with rate limiting and bounded retry.
func (c *Classifier) complete(ctx context.Context, req model.ClassificationRequest, matches []relevance.ScoredCorrection) (string, error) {
	if err := c.rateLimiter.wait(ctx); err != nil {
		return "", err
	}

	prompt := CompletionRequest{
		System: systemPrompt,
		User:   buildPrompt(req, matches),
	}

	var content string
	err := common.WithRetry(ctx, func() error {
		response, err := c.client.Complete(ctx, prompt)
		if err != nil {
			// Providers classify their own failures; an unclassified
			// error is assumed to be a transient transport problem.
			var retryableErr *common.RetryableError
			if errors.As(err, &retryableErr) {
				return err
			}
			return &common.RetryableError{Err: err, Retryable: true}
		}
		content = response
		return nil
	}, c.retryOpts)
	if err != nil {
		return "", err
	}

	return content, nil
}

// normalize coerces an untrusted model response into a valid result. All
// defaulting of missing or wrong-typed fields happens here and nowhere else.
func (c *Classifier) normalize(resp modelResponse, description string, adjustment float64) model.ClassificationResult {
	tag := resp.Tag
	if tag == "" {
		tag = extractTag(description)
	}

	category := resp.Category
	if category == "" {
		category = "unassigned"
	}

	purpose := model.Purpose(resp.Purpose)
	if purpose != model.PurposeBusiness && purpose != model.PurposePersonal {
		purpose = inferPurpose(description)
	}

	writeOff := model.WriteOff{}
	if resp.WriteOff != nil {
		writeOff.IsWriteOff = coerceBool(resp.WriteOff.IsWriteOff)
		writeOff.Reason = resp.WriteOff.Reason
	}

	confidence, ok := coerceConfidence(resp.Confidence)
	if !ok {
		confidence = defaultConfidence
	}
	confidence += adjustment
	if confidence < minConfidence {
		confidence = minConfidence
	}
	if confidence > maxConfidence {
		confidence = maxConfidence
	}

	return model.ClassificationResult{
		Tag:        tag,
		Category:   category,
		Purpose:    purpose,
		WriteOff:   writeOff,
		Confidence: confidence,
	}
}

// failureResult is the terminal fallback for a failed completion call. The
// flat confidence intentionally skips the usual clamping floor.
func (c *Classifier) failureResult(description string, matches []relevance.ScoredCorrection, adjustment float64) model.ClassificationResult {
	return model.ClassificationResult{
		Tag:                 extractTag(description),
		Category:            guessCategory(description),
		Purpose:             model.PurposePersonal,
		WriteOff:            model.WriteOff{IsWriteOff: false, Reason: fallbackReason},
		Confidence:          failureConfidence,
		LearnedFrom:         len(matches),
		CorrectionInfluence: adjustment,
	}
}

// Close stops background goroutines and cleans up resources.
func (c *Classifier) Close() error {
	if c.cache != nil {
		c.cache.Close()
	}
	if c.rateLimiter != nil {
		c.rateLimiter.Close()
	}
	return nil
}

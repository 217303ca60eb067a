package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type VerdictKind string

const (
	VerdictApprove   VerdictKind = "approve"
	VerdictReject    VerdictKind = "reject"
	VerdictUncertain VerdictKind = "uncertain"
)

// Verdict is the closed form of a classifier result. Anything the
// service sends is validated into this at the boundary; no loosely
// typed payload travels further.
type Verdict struct {
	Kind       VerdictKind
	Confidence float64
}

// ParseVerdict validates a raw classifier payload.
func ParseVerdict(kind string, confidence float64) (Verdict, error) {
	switch VerdictKind(kind) {
	case VerdictApprove, VerdictReject, VerdictUncertain:
	default:
		return Verdict{}, fmt.Errorf("unknown classifier verdict %q", kind)
	}
	if confidence < 0 || confidence > 1 {
		return Verdict{}, fmt.Errorf("classifier confidence %v out of range", confidence)
	}
	return Verdict{Kind: VerdictKind(kind), Confidence: confidence}, nil
}

// Classifier is the external evidence-review service. It only judges
// the evidence; what the verdict means for the submission is decided by
// the state machine.
type Classifier interface {
	Classify(ctx context.Context, evidenceURL string) (Verdict, error)
}

type HTTPClassifier struct {
	baseURL string
	httpc   *http.Client
}

func NewHTTPClassifier(baseURL string, timeout time.Duration) *HTTPClassifier {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClassifier{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClassifier) Classify(ctx context.Context, evidenceURL string) (Verdict, error) {
	payload, err := json.Marshal(map[string]string{"evidence_url": evidenceURL})
	if err != nil {
		return Verdict{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/classify", bytes.NewReader(payload))
	if err != nil {
		return Verdict{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Verdict{}, fmt.Errorf("classifier request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Verdict{}, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var body struct {
		Verdict    string  `json:"verdict"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Verdict{}, fmt.Errorf("failed to decode classifier response: %w", err)
	}

	return ParseVerdict(body.Verdict, body.Confidence)
}

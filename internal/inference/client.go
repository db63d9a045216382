// Package inference runs gesture classification through an external
// classifier process and applies the correctness policy to its output.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"strings"
	"time"
)

var (
	ErrClassifierUnavailable = errors.New("classifier process failed to run")
	ErrClassifierTimeout     = errors.New("classifier timed out")
	ErrBadClassifierOutput   = errors.New("classifier produced unreadable output")
)

// Some letters are easier to confuse than others, so their predictions
// need more confidence before they count as correct.
var confidenceThresholds = map[string]float64{
	"J": 75, "Z": 75,
	"G": 70, "H": 70, "Q": 70,
	"P": 65, "K": 65, "L": 65,
}

const defaultThreshold = 60

// Request is one classification request: the extracted landmark feature
// vector and which hand produced it.
type Request struct {
	Features []float64 `json:"features"`
	Hand     string    `json:"hand"`
}

// Result is the raw classifier verdict.
type Result struct {
	Predicted  string  `json:"predicted"`
	Confidence float64 `json:"confidence"`
}

// Client invokes classifier scripts as subprocesses, one per request.
type Client struct {
	pythonBin          string
	alphabetClassifier string
	wordClassifier     string
	timeout            time.Duration
}

// NewClient creates an inference client
func NewClient(pythonBin, alphabetClassifier, wordClassifier string, timeout time.Duration) *Client {
	return &Client{
		pythonBin:          pythonBin,
		alphabetClassifier: alphabetClassifier,
		wordClassifier:     wordClassifier,
		timeout:            timeout,
	}
}

// ClassifySign classifies an alphabet gesture
func (c *Client) ClassifySign(ctx context.Context, req Request) (*Result, error) {
	return c.run(ctx, c.alphabetClassifier, req)
}

// ClassifyWord classifies a word gesture
func (c *Client) ClassifyWord(ctx context.Context, req Request) (*Result, error) {
	return c.run(ctx, c.wordClassifier, req)
}

func (c *Client) run(ctx context.Context, script string, req Request) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	input, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	cmd := exec.CommandContext(ctx, c.pythonBin, script)
	cmd.Stdin = bytes.NewReader(input)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("%w after %s", ErrClassifierTimeout, c.timeout)
	}
	if err != nil {
		log.Printf("Classifier %s failed: %v, stderr: %s", script, err, stderr.String())
		return nil, fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
	}

	var result Result
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		log.Printf("Classifier %s returned unparseable output: %q", script, stdout.String())
		return nil, fmt.Errorf("%w: %v", ErrBadClassifierOutput, err)
	}
	if result.Predicted == "" {
		return nil, fmt.Errorf("%w: empty prediction", ErrBadClassifierOutput)
	}
	return &result, nil
}

// SignIsCorrect decides whether an alphabet prediction matches the expected
// sign: the labels must match and the confidence must reach the sign's
// threshold.
func SignIsCorrect(expected string, result *Result) bool {
	if !strings.EqualFold(expected, result.Predicted) {
		return false
	}
	return result.Confidence >= thresholdFor(expected)
}

// WordIsCorrect decides whether a word prediction matches. Word models
// report no usable confidence, so the label match alone decides.
func WordIsCorrect(expected string, result *Result) bool {
	return strings.EqualFold(expected, result.Predicted)
}

func thresholdFor(sign string) float64 {
	if t, ok := confidenceThresholds[strings.ToUpper(sign)]; ok {
		return t
	}
	return defaultThreshold
}

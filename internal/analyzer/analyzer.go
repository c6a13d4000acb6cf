package analyzer

import (
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/a3tai/mcp-exam-docs/internal/classifier"
)

// Item is one file of a batch request
type Item struct {
	Name    string `json:"name"`
	Content string `json:"content,omitempty"`
}

// Recorder observes every analysis the service performs
type Recorder interface {
	RecordAnalysis(result classifier.Result)
}

// Option configures a Service
type Option func(*Service)

// WithWorkers bounds the number of batch items analyzed concurrently.
// Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithRecorder sets a recorder notified of each result
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}

// Service is the entry point host applications call
type Service struct {
	classifier *classifier.Classifier
	workers    int
	recorder   Recorder
}

// NewService creates an analysis service over a classifier
func NewService(c *classifier.Classifier, opts ...Option) (*Service, error) {
	if c == nil {
		return nil, errors.New("classifier cannot be nil")
	}

	s := &Service{
		classifier: c,
		workers:    runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Classifier returns the classifier behind the service
func (s *Service) Classifier() *classifier.Classifier {
	return s.classifier
}

// AnalyzeDocument classifies a single file. examType and content are
// optional; pass "" to omit them.
func (s *Service) AnalyzeDocument(filename, examType, content string) classifier.Result {
	result := s.classifier.Classify(classifier.Input{
		Filename: filename,
		ExamType: examType,
		Content:  content,
	})

	if s.recorder != nil {
		s.recorder.RecordAnalysis(result)
	}

	return result
}

// BatchAnalyze classifies every item with the same exam context. The result
// at index i belongs to items[i].
func (s *Service) BatchAnalyze(items []Item, examType string) []classifier.Result {
	results := make([]classifier.Result, len(items))

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, item := range items {
		g.Go(func() error {
			results[i] = s.AnalyzeDocument(item.Name, examType, item.Content)
			return nil
		})
	}
	_ = g.Wait() // items never fail

	return results
}

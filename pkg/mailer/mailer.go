package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1
	clientTimeout = time.Second * 15
)

// Message is one outbound mail job for the external mail API. Delivery is
// fire-and-forget from the caller's point of view.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type MailerI interface {
	Enqueue(ctx context.Context, msg Message) error
}

type HTTPClientI interface {
	Do(req *http.Request) (*http.Response, error)
}

type Service struct {
	url    string
	client HTTPClientI
	queue  chan Message
	group  errgroup.Group
}

func New(url string, workers int) *Service {
	s := &Service{
		url:    url,
		client: &http.Client{Timeout: clientTimeout},
		queue:  make(chan Message, workers*4),
	}
	for i := 0; i < workers; i++ {
		s.group.Go(s.worker)
	}
	return s
}

// Enqueue hands the message to the worker pool. It blocks only when the
// queue is saturated.
func (s *Service) Enqueue(ctx context.Context, msg Message) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case s.queue <- msg:
		return nil
	}
}

// Close drains the queue and waits for in-flight deliveries.
func (s *Service) Close() error {
	close(s.queue)
	return s.group.Wait()
}

func (s *Service) worker() error {
	for msg := range s.queue {
		if err := s.deliver(msg); err != nil {
			zap.L().Error("mail delivery failed",
				zap.String("to", msg.To),
				zap.Error(err),
			)
		}
	}
	return nil
}

func (s *Service) deliver(msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal mail message: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		req, err := http.NewRequest(http.MethodPost, s.url+"/api/send", bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(retryInterval * time.Duration(attempt))
			continue
		}
		resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated, http.StatusAccepted:
			return nil
		case http.StatusTooManyRequests:
			zap.L().Warn("mail API rate limit, retrying",
				zap.String("to", msg.To),
				zap.Int("attempt", attempt),
			)
			lastErr = fmt.Errorf("mail API rate limited")
			time.Sleep(retryInterval * time.Duration(attempt))
		default:
			return fmt.Errorf("unexpected mail API status %d", resp.StatusCode)
		}
	}
	return fmt.Errorf("mail not delivered after %d retries: %w", maxRetries, lastErr)
}

// SetClient swaps the underlying HTTP client, used by tests.
func (s *Service) SetClient(client HTTPClientI) {
	s.client = client
}

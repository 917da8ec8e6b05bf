package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Astemirdum/home-library/pkg/circuit_breaker"
	"github.com/Astemirdum/home-library/pkg/jsonx"
	"github.com/pkg/errors"
	"go.uber.org/ratelimit"
)

// BookPayload is the body of POST /books.
type BookPayload struct {
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	Authors         string `json:"authors"`
	AuthorFirstName string `json:"authorFirstName"`
	AuthorLastName  string `json:"authorLastName"`
}

// StatusError is a non 2xx answer of the catalog.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d %s", e.Code, e.Body)
}

const (
	cbWindow           = 5
	cbOpenTimeout      = 30 * time.Second
	cbFailureRatio     = 0.6
	cbRecoveryRequests = 1
)

type Client struct {
	http     *http.Client
	endpoint string
	token    string
	limiter  ratelimit.Limiter
	cb       circuit_breaker.CircuitBreaker
}

func New(endpoint, token string, rps int, timeout time.Duration) *Client {
	limiter := ratelimit.NewUnlimited()
	if rps > 0 {
		limiter = ratelimit.New(rps)
	}
	return &Client{
		http:     &http.Client{Timeout: timeout},
		endpoint: strings.TrimRight(endpoint, "/"),
		token:    token,
		limiter:  limiter,
		cb:       circuit_breaker.New(cbWindow, cbOpenTimeout, cbFailureRatio, cbRecoveryRequests),
	}
}

// CreateBook posts one book. Transport errors and 5xx answers count against
// the circuit breaker; once it opens calls fail with circuit_breaker.ErrOpenCB
// without touching the network.
func (c *Client) CreateBook(ctx context.Context, p BookPayload) error {
	body, err := jsonx.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "marshal")
	}

	var rejected error
	err = c.cb.Call(func() error {
		c.limiter.Take()
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/books", bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.token)

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode < http.StatusMultipleChoices {
			return nil
		}
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		statusErr := &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
		if resp.StatusCode >= http.StatusInternalServerError {
			return statusErr
		}
		rejected = statusErr
		return nil
	})
	if err != nil {
		return err
	}
	return rejected
}

func (c *Client) BreakerState() circuit_breaker.Status {
	return c.cb.State()
}

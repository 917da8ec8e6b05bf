package client_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Astemirdum/home-library/pkg/circuit_breaker"
	"github.com/Astemirdum/home-library/pkg/jsonx"
	"github.com/Astemirdum/home-library/uploader/client"
	"github.com/stretchr/testify/require"
)

func TestClient_CreateBook(t *testing.T) {
	t.Parallel()
	var got client.BookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/books", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, jsonx.Unmarshal(body, &got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := client.New(srv.URL+"/", "tok", 0, time.Second)
	p := client.BookPayload{
		ISBN: "111", Title: "Dune", Authors: "Frank Herbert", AuthorFirstName: "Frank", AuthorLastName: "Herbert",
	}
	require.NoError(t, c.CreateBook(context.Background(), p))
	require.Equal(t, p, got)
}

func TestClient_Rejected(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"book 111 already exists"}`))
	}))
	defer srv.Close()

	c := client.New(srv.URL, "tok", 0, time.Second)
	for i := 0; i < 10; i++ {
		err := c.CreateBook(context.Background(), client.BookPayload{ISBN: "111"})
		var statusErr *client.StatusError
		require.ErrorAs(t, err, &statusErr)
		require.Equal(t, http.StatusConflict, statusErr.Code)
	}
	require.Equal(t, circuit_breaker.Closed, c.BreakerState())
}

func TestClient_BreakerOpens(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := client.New(srv.URL, "tok", 0, time.Second)
	for i := 0; i < 3; i++ {
		var statusErr *client.StatusError
		require.ErrorAs(t, c.CreateBook(context.Background(), client.BookPayload{ISBN: "1"}), &statusErr)
	}
	require.Equal(t, circuit_breaker.Open, c.BreakerState())

	err := c.CreateBook(context.Background(), client.BookPayload{ISBN: "1"})
	require.ErrorIs(t, err, circuit_breaker.ErrOpenCB)
	require.Equal(t, int32(3), calls.Load())
}

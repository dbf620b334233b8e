package library

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, handler http.HandlerFunc) (*Client, *[]url.Values) {
	var calls []url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Query())
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Config{ApiKey: "key-1", TimeoutSeconds: 5}, nil)
	// Point the client at the test server, keeping the /api path.
	client.baseURL = srv.URL + "/api"
	return client, &calls
}

func TestClient_GetAllBooks(t *testing.T) {
	client, calls := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"BookID": "1", "BookName": "Dune", "AuthorName": "Frank Herbert", "Status": "Open", "BookLibrary": "2023-04-01"},
			{"BookID": "2", "BookName": "Hyperion", "AuthorName": "Dan Simmons", "Status": "Skipped"}
		]`))
	})

	books, err := client.GetAllBooks(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Dune", books[0].Title)
	assert.True(t, books[0].Formats[FormatEBook].Present)

	q := (*calls)[0]
	assert.Equal(t, "getAllBooks", q.Get("cmd"))
	assert.Equal(t, "key-1", q.Get("apikey"))
}

func TestClient_QueueBookPlaintextOK(t *testing.T) {
	client, calls := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	err := client.QueueBook(context.Background(), "42", FormatAudioBook)
	require.NoError(t, err)

	q := (*calls)[0]
	assert.Equal(t, "queueBook", q.Get("cmd"))
	assert.Equal(t, "42", q.Get("id"))
	assert.Equal(t, "AudioBook", q.Get("type"))
}

func TestClient_NonJSONResponseIsAcknowledgement(t *testing.T) {
	client, _ := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("book search started"))
	})

	err := client.SearchBook(context.Background(), "42", FormatEBook)
	assert.NoError(t, err)
}

func TestClient_ErrorStatus(t *testing.T) {
	client, _ := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusForbidden)
	})

	_, err := client.GetAllBooks(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "getAllBooks")
}

func TestClient_EmptyBodyYieldsNoRecords(t *testing.T) {
	client, _ := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(""))
	})

	books, err := client.GetAllBooks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, books)
}

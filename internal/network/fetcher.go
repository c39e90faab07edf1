// Package network fetches remote org-social feeds over HTTP.
package network

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gerunddev/orgsocial/internal/logger"
	"github.com/gerunddev/orgsocial/internal/social"
)

// Fetcher downloads and parses follow feeds. Sources are fetched
// concurrently, one goroutine per URL; failures are logged under a shared
// request id and dropped from the result.
type Fetcher struct {
	client *http.Client
	log    *logger.Logger
}

// NewFetcher builds a fetcher with a per-request timeout. A nil log
// discards output.
func NewFetcher(timeout time.Duration, log *logger.Logger) *Fetcher {
	if log == nil {
		log = logger.Discard()
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// FetchAll retrieves every source concurrently and returns the parsed
// documents in submission order, minus any that failed.
func (f *Fetcher) FetchAll(ctx context.Context, sources []string) []*social.Document {
	requestID := uuid.NewString()
	f.log.FetchStarted(requestID, len(sources))
	start := time.Now()

	results := make([]*social.Document, len(sources))
	var wg sync.WaitGroup
	for i, url := range sources {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			doc, err := f.fetch(ctx, url)
			if err != nil {
				f.log.FetchFailed(requestID, url, err)
				return
			}
			f.log.SourceParsed(requestID, url, len(doc.Posts))
			results[i] = doc
		}(i, url)
	}
	wg.Wait()

	docs := make([]*social.Document, 0, len(sources))
	for _, d := range results {
		if d != nil {
			docs = append(docs, d)
		}
	}
	f.log.FetchCompleted(requestID, len(docs), len(sources)-len(docs), time.Since(start))

	return docs
}

// FetchFollows fetches every feed the profile follows.
func (f *Fetcher) FetchFollows(ctx context.Context, profile *social.Profile) []*social.Document {
	follows := profile.Follows()
	urls := make([]string, 0, len(follows))
	for _, fl := range follows {
		urls = append(urls, fl.URL)
	}
	return f.FetchAll(ctx, urls)
}

func (f *Fetcher) fetch(ctx context.Context, url string) (*social.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return social.ParseDocument(string(body), url), nil
}

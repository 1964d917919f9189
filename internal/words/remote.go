// internal/words/remote.go
//
// Remote word source (English): one GET to a random-word service returning
// a JSON array such as ["apple"]. The word is uppercased and accent-folded
// before use; anything outside A–Z is a source failure.

package words

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultRemoteURL is the public service the browser client used.
const DefaultRemoteURL = "https://random-word-api.herokuapp.com/word?number=1"

// Remote fetches a single word over HTTP.
type Remote struct {
	URL    string
	Client *http.Client
}

// NewRemote builds a Remote with its own client bounded by timeout.
func NewRemote(url string, timeout time.Duration) *Remote {
	if url == "" {
		url = DefaultRemoteURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Remote{URL: url, Client: &http.Client{Timeout: timeout}}
}

// Word implements Source. Every failure wraps ErrSourceUnavailable.
func (r *Remote) Word(ctx context.Context, _ Language) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("%w: status %d", ErrSourceUnavailable, resp.StatusCode)
	}

	var list []string
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&list); err != nil {
		return "", fmt.Errorf("%w: decode: %v", ErrSourceUnavailable, err)
	}
	if len(list) == 0 {
		return "", fmt.Errorf("%w: empty result", ErrSourceUnavailable)
	}
	w := Fold(list[0])
	if !Playable(English, w) {
		return "", fmt.Errorf("%w: unusable word %q", ErrSourceUnavailable, list[0])
	}
	return w, nil
}

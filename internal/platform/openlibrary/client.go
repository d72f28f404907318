package openlibrary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const DefaultBaseURL = "http://openlibrary.org"

type Client struct {
	httpClient *http.Client
	userAgent  string
	baseURL    string
}

// NewClient builds a search client. A zero timeout leaves the transport default
// in place (no client-side deadline).
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
		baseURL:   baseURL,
	}
}

// SearchResponse matches search.json
type SearchResponse struct {
	NumFound int               `json:"numFound"`
	Docs     []json.RawMessage `json:"docs"`
}

// Doc is one search.json result. Optional fields are pointers or carry a
// presence flag so the mapper can tell "absent" from "zero".
type Doc struct {
	Key                 string   `json:"key"`
	Title               string   `json:"title"`
	FirstSentence       []string `json:"first_sentence"`
	CoverI              *int64   `json:"cover_i"`
	Language            []string `json:"language"`
	NumberOfPagesMedian *int     `json:"number_of_pages_median"`
	AuthorNames         []string `json:"author_name"`

	// HasLanguage is true when the "language" key was present at all.
	HasLanguage bool `json:"-"`
	// Raw is the record exactly as returned by the API.
	Raw json.RawMessage `json:"-"`
}

func (d *Doc) UnmarshalJSON(data []byte) error {
	type plain Doc
	var p plain
	// Fields with an unexpected type are left at their zero value.
	if err := json.Unmarshal(data, &p); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return err
		}
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	_, p.HasLanguage = keys["language"]
	p.Raw = append(json.RawMessage(nil), data...)

	*d = Doc(p)
	return nil
}

// Search queries search.json by title and author and returns the first doc.
// A non-200 status or an empty result list yields (nil, nil).
func (c *Client) Search(ctx context.Context, title, author string) (*Doc, error) {
	q := url.Values{}
	q.Set("title", title)
	q.Set("author", author)
	u := fmt.Sprintf("%s/search.json?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var res SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	if len(res.Docs) == 0 {
		return nil, nil
	}

	var doc Doc
	if err := json.Unmarshal(res.Docs[0], &doc); err != nil {
		return nil, fmt.Errorf("decode search doc: %w", err)
	}
	return &doc, nil
}

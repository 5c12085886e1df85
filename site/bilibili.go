package site

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/fwojciec/linksum"
)

// Ensure Bilibili implements linksum.Resolver at compile time.
var _ linksum.Resolver = (*Bilibili)(nil)

// reBilibiliArticle captures the cv-id of a bilibili column article.
var reBilibiliArticle = regexp.MustCompile(`bilibili\.com/read/(?:mobile/)?cv(\d+)`)

// reInitialState captures the JSON blob bilibili embeds for its client
// renderer.
var reInitialState = regexp.MustCompile(`window\.__INITIAL_STATE__\s*=\s*(\{.*?\});`)

// articleEndpoints are the known content-API URL shapes, tried in order.
// The API mirrors what the page's own scripts request, so it keeps working
// when the server-rendered markup is an empty shell.
var articleEndpoints = []string{
	"https://api.bilibili.com/x/article/view?id=cv%s",
	"https://api.bilibili.com/x/article/viewinfo?id=%s&mobi_app=pc&from=web",
}

// articleResponse is the envelope shared by the article API endpoints.
type articleResponse struct {
	Code int `json:"code"`
	Data struct {
		Title       string `json:"title"`
		Content     string `json:"content"`
		AuthorName  string `json:"author_name"`
		PublishTime int64  `json:"publish_time"`
	} `json:"data"`
}

// initialState is the subset of the embedded render state the resolver
// needs.
type initialState struct {
	ReadInfo struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		Author  struct {
			Name string `json:"name"`
		} `json:"author"`
	} `json:"readInfo"`
}

// Bilibili extracts bilibili column articles via the platform's content
// API, falling back to the JSON state embedded in the page.
type Bilibili struct {
	fetcher linksum.Fetcher
}

// NewBilibili creates a Bilibili resolver.
func NewBilibili(fetcher linksum.Fetcher) *Bilibili {
	return &Bilibili{fetcher: fetcher}
}

// Name returns the resolver's identifier.
func (b *Bilibili) Name() string {
	return "bilibili"
}

// Match reports whether the URL is a bilibili column article.
func (b *Bilibili) Match(rawURL string) bool {
	return reBilibiliArticle.MatchString(rawURL)
}

// Resolve tries each known API endpoint in sequence until one yields a
// structurally valid payload (title and body present), then falls back to
// the embedded page state.
func (b *Bilibili) Resolve(ctx context.Context, rawURL string) (*linksum.ExtractResult, error) {
	m := reBilibiliArticle.FindStringSubmatch(rawURL)
	if m == nil {
		return nil, nil
	}
	id := m[1]

	for _, shape := range articleEndpoints {
		endpoint := fmt.Sprintf(shape, id)
		body, err := b.fetcher.Get(ctx, endpoint, map[string]string{
			"Referer": rawURL,
		})
		if err != nil {
			continue
		}

		var resp articleResponse
		if err := json.Unmarshal([]byte(body), &resp); err != nil {
			continue
		}
		if resp.Code != 0 || resp.Data.Title == "" || resp.Data.Content == "" {
			continue
		}

		return &linksum.ExtractResult{
			Title:       resp.Data.Title,
			Author:      resp.Data.AuthorName,
			ContentHTML: resp.Data.Content,
		}, nil
	}

	return b.resolveFromPage(ctx, rawURL)
}

// resolveFromPage parses the __INITIAL_STATE__ blob out of the article
// page itself.
func (b *Bilibili) resolveFromPage(ctx context.Context, rawURL string) (*linksum.ExtractResult, error) {
	html, err := b.fetcher.Get(ctx, rawURL, nil)
	if err != nil {
		return nil, err
	}

	m := reInitialState.FindStringSubmatch(html)
	if m == nil {
		return nil, nil
	}

	var state initialState
	if err := json.Unmarshal([]byte(m[1]), &state); err != nil {
		return nil, nil
	}
	if state.ReadInfo.Title == "" || strings.TrimSpace(state.ReadInfo.Content) == "" {
		return nil, nil
	}

	return &linksum.ExtractResult{
		Title:       state.ReadInfo.Title,
		Author:      state.ReadInfo.Author.Name,
		ContentHTML: state.ReadInfo.Content,
	}, nil
}

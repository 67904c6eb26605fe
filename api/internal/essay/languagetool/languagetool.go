// Package languagetool adapts the LanguageTool HTTP API to essay.GrammarChecker.
package languagetool

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"essay-feedback/api/internal/essay"
	"essay-feedback/api/internal/essay/types"
	"essay-feedback/api/internal/util"
)

const (
	DefaultBaseURL  = "https://api.languagetool.org"
	DefaultLanguage = "en-US"
)

// noisy rules never reach the student
var excludedRules = map[string]bool{
	"WHITESPACE_RULE":              true,
	"COMMA_PARENTHESIS_WHITESPACE": true,
	"EN_QUOTES":                    true,
}

type Config struct {
	BaseURL    string
	Language   string
	Username   string
	APIKey     string
	HTTPClient *http.Client // optional (tests)
}

type Client struct {
	baseURL  string
	language string
	username string
	apiKey   string
	hc       *http.Client
	log      *zap.Logger
}

func New(cfg Config, log *zap.Logger) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	lang := strings.TrimSpace(cfg.Language)
	if lang == "" {
		lang = DefaultLanguage
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   5 * time.Second,
				ResponseHeaderTimeout: 30 * time.Second,
				IdleConnTimeout:       90 * time.Second,
				MaxIdleConns:          50,
				MaxIdleConnsPerHost:   50,
			},
		}
	}
	return &Client{
		baseURL:  base,
		language: lang,
		username: strings.TrimSpace(cfg.Username),
		apiKey:   strings.TrimSpace(cfg.APIKey),
		hc:       hc,
		log:      log,
	}
}

func (c *Client) Language() string { return c.language }

type checkResponse struct {
	Matches []match `json:"matches"`
}

type match struct {
	Message      string `json:"message"`
	Offset       int    `json:"offset"`
	Length       int    `json:"length"`
	Replacements []struct {
		Value string `json:"value"`
	} `json:"replacements"`
	Rule struct {
		ID        string `json:"id"`
		IssueType string `json:"issueType"`
		Category  struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"category"`
	} `json:"rule"`
}

// Check sends text to /v2/check and maps every match to a Correction with a
// rune-offset span.
func (c *Client) Check(ctx context.Context, text string) ([]types.Correction, error) {
	form := url.Values{}
	form.Set("text", text)
	form.Set("language", c.language)
	if c.username != "" && c.apiKey != "" {
		form.Set("username", c.username)
		form.Set("apiKey", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/check", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("languagetool: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("languagetool: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("languagetool %d: %s", resp.StatusCode, util.TruncateRunes(strings.TrimSpace(string(body)), 200))
	}

	var out checkResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("languagetool: bad JSON: %w", err)
	}

	corrections := mapMatches(text, out.Matches)
	c.log.Debug("languagetool check",
		zap.Int("matches", len(out.Matches)),
		zap.Int("corrections", len(corrections)),
		zap.Duration("latency", time.Since(start)))
	return corrections, nil
}

func mapMatches(text string, matches []match) []types.Correction {
	runes := []rune(text)
	idx := utf16ToRune(text)
	corrections := make([]types.Correction, 0, len(matches))
	for _, m := range matches {
		if excludedRules[m.Rule.ID] {
			continue
		}
		span := essay.ValidateSpan(types.TextSpan{
			Start: runeOffset(idx, m.Offset),
			End:   runeOffset(idx, m.Offset+m.Length),
		}, len(runes))

		corr := types.Correction{
			Original:    string(runes[span.Start:span.End]),
			Explanation: m.Message,
			Position:    span,
			RuleID:      m.Rule.ID,
			Category:    m.Rule.Category.Name,
		}
		if len(m.Replacements) > 0 {
			corr.Suggestion = m.Replacements[0].Value
		}
		corr.Type, corr.Severity = classify(m.Rule.IssueType)
		corrections = append(corrections, corr)
	}
	return corrections
}

func classify(issueType string) (types.CorrectionType, types.Severity) {
	switch issueType {
	case "misspelling", "typographical":
		return types.CorrectionSpelling, types.SeverityError
	case "style", "non-standard":
		return types.CorrectionStyle, types.SeverityWarning
	default:
		return types.CorrectionGrammar, types.SeverityError
	}
}

// utf16ToRune maps every UTF-16 code unit offset of text (0..len inclusive) to
// the rune offset it falls in.
func utf16ToRune(text string) []int {
	idx := make([]int, 0, len(text)+1)
	r := 0
	for _, ch := range text {
		idx = append(idx, r)
		if ch >= 0x10000 && utf8.ValidRune(ch) {
			idx = append(idx, r)
		}
		r++
	}
	return append(idx, r)
}

// runeOffset returns -1 for offsets outside the text so ValidateSpan rejects them.
func runeOffset(idx []int, off int) int {
	if off < 0 || off >= len(idx) {
		return -1
	}
	return idx[off]
}

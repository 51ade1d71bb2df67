package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// PivotLanguage is the canonical language all research and prompting runs in.
const PivotLanguage = "en"

// Translator detects the language of user input and moves text to and from
// the pivot language. Both directions are best-effort: callers fall back to
// the untranslated text on error, they never fail the request.
type Translator interface {
	// ToPivot returns the pivot-language form of text and the detected
	// language code of the input.
	ToPivot(ctx context.Context, text string) (translated string, detectedLang string, err error)
	// FromPivot translates pivot-language text into targetLang.
	FromPivot(ctx context.Context, text string, targetLang string) (string, error)
}

// GoogleTranslator implements Translator against the public Google Translate
// endpoint, which handles detection and translation in one call.
type GoogleTranslator struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// NewGoogleTranslator creates a translator with the given per-call timeout.
func NewGoogleTranslator(timeout time.Duration) *GoogleTranslator {
	return &GoogleTranslator{
		baseURL:    "https://translate.googleapis.com/translate_a/single",
		httpClient: &http.Client{},
		timeout:    timeout,
	}
}

func (t *GoogleTranslator) ToPivot(ctx context.Context, text string) (string, string, error) {
	translated, detected, err := t.translate(ctx, text, "auto", PivotLanguage)
	if err != nil {
		return "", "", err
	}
	if detected == PivotLanguage {
		// No-op translation: keep the user's exact wording.
		return text, PivotLanguage, nil
	}
	return translated, detected, nil
}

func (t *GoogleTranslator) FromPivot(ctx context.Context, text string, targetLang string) (string, error) {
	if targetLang == PivotLanguage || targetLang == "" {
		return text, nil
	}
	translated, _, err := t.translate(ctx, text, PivotLanguage, targetLang)
	if err != nil {
		return "", err
	}
	return translated, nil
}

func (t *GoogleTranslator) translate(ctx context.Context, text, source, target string) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", source)
	params.Set("tl", target)
	params.Set("dt", "t")
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("translate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("translate returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("reading translate response: %w", err)
	}

	return parseTranslateResponse(body)
}

// parseTranslateResponse unpacks the endpoint's nested-array payload:
// [[[translated, original, ...], ...], ..., detectedLang].
func parseTranslateResponse(body []byte) (string, string, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", "", fmt.Errorf("unmarshalling translate response: %w", err)
	}
	if len(raw) < 3 {
		return "", "", fmt.Errorf("translate response too short")
	}

	var segments [][]json.RawMessage
	if err := json.Unmarshal(raw[0], &segments); err != nil {
		return "", "", fmt.Errorf("unmarshalling translate segments: %w", err)
	}

	var sb strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		var piece string
		if err := json.Unmarshal(seg[0], &piece); err != nil {
			continue
		}
		sb.WriteString(piece)
	}

	var detected string
	if err := json.Unmarshal(raw[2], &detected); err != nil {
		return "", "", fmt.Errorf("unmarshalling detected language: %w", err)
	}

	if sb.Len() == 0 {
		return "", "", fmt.Errorf("translate response contained no text")
	}

	return sb.String(), detected, nil
}

// Пакет captcha проверяет токен защиты от спама через siteverify API
// (reCAPTCHA v3 возвращает score, Turnstile и hCaptcha только success)
package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultVerifyURL адрес проверки reCAPTCHA
const DefaultVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// DefaultMinScore порог score для reCAPTCHA v3
const DefaultMinScore = 0.5

type verifyResponse struct {
	Success    bool     `json:"success"`
	Score      *float64 `json:"score"`
	ErrorCodes []string `json:"error-codes"`
}

// Verifier обращается к siteverify
type Verifier struct {
	secret   string
	url      string
	minScore float64
	client   *http.Client
}

// NewVerifier создаёт проверку; пустой secret отключает её
func NewVerifier(secret, verifyURL string, minScore float64, client *http.Client) *Verifier {
	if verifyURL == "" {
		verifyURL = DefaultVerifyURL
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Verifier{secret: secret, url: verifyURL, minScore: minScore, client: client}
}

// Enabled сообщает, настроена ли проверка
func (v *Verifier) Enabled() bool {
	return v != nil && v.secret != ""
}

// Verify возвращает true, если запрос считается человеческим.
// Без secret проверка всегда проходит; при наличии score он должен превышать порог
func (v *Verifier) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	if !v.Enabled() {
		return true, nil
	}
	if strings.TrimSpace(token) == "" {
		return false, nil
	}
	form := url.Values{"secret": {v.secret}, "response": {token}}
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.url, strings.NewReader(form.Encode()))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := v.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("captcha verify failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("captcha verify failed: status %d", resp.StatusCode)
	}
	var out verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("captcha verify failed: %w", err)
	}
	if !out.Success {
		return false, nil
	}
	if out.Score != nil {
		return *out.Score > v.minScore, nil
	}
	return true, nil
}

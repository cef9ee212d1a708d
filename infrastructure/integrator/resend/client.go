// Package resend envia e-mails transacionais de alerta via API do Resend
package resend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jbiddulph/localseo/internal/config"
)

type Notifier interface {
	SendAlertEmail(to, subject, html string) error
}

type SendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type ResendClient struct {
	BaseURL    string
	APIKey     string
	FromEmail  string
	HTTPClient *http.Client
}

func NewClient(cfg *config.Config) *ResendClient {
	return &ResendClient{
		BaseURL:   cfg.Resend.BaseURL,
		APIKey:    cfg.Resend.APIKey,
		FromEmail: cfg.Resend.FromEmail,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *ResendClient) SendAlertEmail(to, subject, html string) error {
	url := fmt.Sprintf("%s/emails", c.BaseURL)

	reqBody := SendEmailRequest{
		From:    c.FromEmail,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("resend: erro ao enviar e-mail: %s", body)
	}

	return nil
}

package deliver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/newsclip/newsclip/app/cfg"
	"github.com/newsclip/newsclip/app/report"
)

const resendEndpoint = "https://api.resend.com/emails"

type resendPayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}

// EmailDispatcher delivers the rich digest body through the Resend
// transactional email API.
type EmailDispatcher struct {
	httpClient *http.Client
	endpoint   string
}

var _ Dispatcher = (*EmailDispatcher)(nil)

func NewEmailDispatcher(httpClient *http.Client) *EmailDispatcher {
	return &EmailDispatcher{
		httpClient: httpClient,
		endpoint:   resendEndpoint,
	}
}

func (d *EmailDispatcher) Name() string {
	return ChannelEmail
}

func (d *EmailDispatcher) Send(ctx context.Context, r *report.Report) Outcome {
	conf := cfg.Get()
	outcome := Outcome{Channel: ChannelEmail, Count: r.Total}

	if conf.ResendAPIKey == "" || conf.ReportEmailTo == "" || conf.ReportEmailFrom == "" {
		outcome.Reason = ReasonMissingConfig
		return outcome
	}

	payload := resendPayload{
		From:    conf.ReportEmailFrom,
		To:      conf.ReportEmailTo,
		Subject: r.Subject,
		HTML:    r.HTML,
		Text:    r.Text,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		outcome.Reason = ReasonTransportError
		return outcome
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "POST", d.endpoint, bytes.NewReader(body))
	if err != nil {
		outcome.Reason = ReasonTransportError
		return outcome
	}
	req.Header.Set("Authorization", "Bearer "+conf.ResendAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		outcome.Reason = ReasonTransportError
		return outcome
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome.Reason = fmt.Sprintf("http_%d", resp.StatusCode)
		return outcome
	}

	outcome.OK = true
	outcome.Sent = true
	return outcome
}

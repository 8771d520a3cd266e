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

// truncationMarker is appended whenever the text body is cut to fit the
// receiver's size limit; truncation is never silent.
const truncationMarker = "\n..."

type larkPayload struct {
	MsgType string      `json:"msg_type"`
	Content larkContent `json:"content"`
}

type larkContent struct {
	Text string `json:"text"`
}

type larkResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// LarkDispatcher posts the plain-text digest to a Lark group webhook.
type LarkDispatcher struct {
	httpClient *http.Client
}

var _ Dispatcher = (*LarkDispatcher)(nil)

func NewLarkDispatcher(httpClient *http.Client) *LarkDispatcher {
	return &LarkDispatcher{httpClient: httpClient}
}

func (d *LarkDispatcher) Name() string {
	return ChannelLark
}

func (d *LarkDispatcher) Send(ctx context.Context, r *report.Report) Outcome {
	conf := cfg.Get()
	outcome := Outcome{Channel: ChannelLark, Count: r.Total}

	if conf.LarkWebhookURL == "" {
		outcome.Reason = ReasonMissingConfig
		return outcome
	}

	text := buildLarkText(r.Headline, r.Text, conf.LarkMaxTextLength)
	body, err := json.Marshal(larkPayload{
		MsgType: "text",
		Content: larkContent{Text: text},
	})
	if err != nil {
		outcome.Reason = ReasonTransportError
		return outcome
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "POST", conf.LarkWebhookURL, bytes.NewReader(body))
	if err != nil {
		outcome.Reason = ReasonTransportError
		return outcome
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		outcome.Reason = ReasonTransportError
		return outcome
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome.Reason = fmt.Sprintf("http_%d", resp.StatusCode)
		return outcome
	}

	// The webhook reports application-level failures with a 200 status and a
	// non-zero code in the JSON body. An unparseable success body is fine.
	respBody, err := io.ReadAll(resp.Body)
	if err == nil {
		var parsed larkResponse
		if json.Unmarshal(respBody, &parsed) == nil && parsed.Code != 0 {
			outcome.Reason = fmt.Sprintf("lark_%d", parsed.Code)
			return outcome
		}
	}

	outcome.OK = true
	outcome.Sent = true
	return outcome
}

// buildLarkText prepends the headline and truncates the body to maxLength
// characters, appending the marker when anything was cut. Truncation counts
// characters, not bytes, so multi-byte text is never split mid-rune.
func buildLarkText(headline, text string, maxLength int) string {
	body := text
	if maxLength > 0 {
		runes := []rune(text)
		if len(runes) > maxLength {
			body = string(runes[:maxLength]) + truncationMarker
		}
	}
	return headline + "\n\n" + body
}

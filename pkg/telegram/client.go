// Package telegram is a minimal Bot API client covering the two calls the
// relay needs: sendMessage for the lead summary and sendDocument for
// attachments. Both target one fixed chat.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"github.com/tasaheel/leads-api/pkg/httpclient"
	"github.com/tasaheel/leads-api/pkg/logger"
	"github.com/tasaheel/leads-api/pkg/metrics"
	"go.uber.org/zap"
)

const parseMode = "HTML"

// Client talks to the Telegram Bot API for one bot and one destination chat
type Client struct {
	baseURL    string
	token      string
	chatID     string
	httpClient httpclient.Client
}

// New creates a Telegram client. The httpClient should have no deadline
// when the client is used for document uploads (see httpclient.NewUploadClient).
func New(baseURL, token, chatID string, httpClient httpclient.Client) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		chatID:     chatID,
		httpClient: httpClient,
	}
}

// apiResponse is the envelope every Bot API method returns
type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

// SendMessage delivers a text message to the configured chat in HTML parse
// mode with link previews disabled.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	start := time.Now()
	operation := "sendMessage"

	payload, err := json.Marshal(sendMessageRequest{
		ChatID:                c.chatID,
		Text:                  text,
		ParseMode:             parseMode,
		DisableWebPagePreview: true,
	})
	if err != nil {
		return fmt.Errorf("failed to encode sendMessage payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL(operation), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create sendMessage request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	err = c.execute(req, operation)
	duration := metrics.MeasureDuration(start)

	if err != nil {
		c.record(operation, "error", duration)
		logger.LogAPICall("telegram", operation, "error", duration, zap.Error(err))
		return err
	}

	c.record(operation, "success", duration)
	logger.LogAPICall("telegram", operation, "success", duration,
		zap.Int("text_length", len(text)),
	)
	return nil
}

// SendDocument streams a file from disk to the configured chat with a
// caption. The multipart body is piped rather than buffered, so attachment
// size is bounded only by disk, not memory.
func (c *Client) SendDocument(ctx context.Context, path, fileName, caption string) error {
	start := time.Now()
	operation := "sendDocument"

	file, err := os.Open(path)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		c.record(operation, "error", duration)
		logger.LogAPICall("telegram", operation, "error", duration,
			zap.Error(err),
			zap.String("file_name", fileName),
		)
		return fmt.Errorf("failed to open attachment: %w", err)
	}
	defer file.Close()

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		err := writeDocumentForm(writer, c.chatID, file, fileName, caption)
		if closeErr := writer.Close(); err == nil {
			err = closeErr
		}
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL(operation), pr)
	if err != nil {
		return fmt.Errorf("failed to create sendDocument request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	err = c.execute(req, operation)
	duration := metrics.MeasureDuration(start)

	if err != nil {
		c.record(operation, "error", duration)
		logger.LogAPICall("telegram", operation, "error", duration,
			zap.Error(err),
			zap.String("file_name", fileName),
		)
		return err
	}

	c.record(operation, "success", duration)
	logger.LogAPICall("telegram", operation, "success", duration,
		zap.String("file_name", fileName),
	)
	return nil
}

func writeDocumentForm(writer *multipart.Writer, chatID string, file *os.File, fileName, caption string) error {
	if err := writer.WriteField("chat_id", chatID); err != nil {
		return err
	}
	if err := writer.WriteField("caption", caption); err != nil {
		return err
	}
	if err := writer.WriteField("parse_mode", parseMode); err != nil {
		return err
	}

	part, err := writer.CreateFormFile("document", fileName)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, file)
	return err
}

// execute sends the request and surfaces transport errors, non-2xx
// statuses, and API-level ok:false responses as errors.
func (c *Client) execute(req *http.Request, operation string) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram %s request failed: %w", operation, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read telegram %s response: %w", operation, err)
	}

	var result apiResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("telegram %s returned status %d with unparseable body", operation, resp.StatusCode)
	}

	if !result.OK {
		return fmt.Errorf("telegram %s failed: %s (code %d)", operation, result.Description, result.ErrorCode)
	}

	return nil
}

func (c *Client) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
}

func (c *Client) record(operation, status string, duration float64) {
	metrics.TelegramRequestDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.TelegramRequestTotal.WithLabelValues(operation, status).Inc()
}

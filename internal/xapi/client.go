// Package xapi is a minimal X (Twitter) API client: text tweets via API v2,
// media upload via the v1.1 endpoint. Auth is OAuth 1.0a user context.
package xapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/dghubble/oauth1"

	"github.com/adivyas/khabri/internal/config"
)

const (
	defaultAPIBase    = "https://api.x.com/2"
	defaultUploadBase = "https://upload.twitter.com/1.1"
)

// Client posts to the X API on behalf of one user.
type Client struct {
	APIBase    string
	UploadBase string

	httpClient *http.Client
}

// New builds a Client with OAuth 1.0a user-context signing.
func New(creds config.XCreds) (*Client, error) {
	if creds.APIKey == "" || creds.APISecret == "" || creds.AccessToken == "" || creds.AccessSecret == "" {
		return nil, fmt.Errorf("incomplete X credentials")
	}

	oauthCfg := oauth1.NewConfig(creds.APIKey, creds.APISecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessSecret)
	httpClient := oauthCfg.Client(oauth1.NoContext, token)
	httpClient.Timeout = 30 * time.Second

	return &Client{
		APIBase:    defaultAPIBase,
		UploadBase: defaultUploadBase,
		httpClient: httpClient,
	}, nil
}

// PostText publishes a text-only tweet and returns its id. Implements
// domain.Publisher.
func (c *Client) PostText(text string) (string, error) {
	return c.createTweet(tweetRequest{Text: text})
}

// PostTextWithMedia uploads the image, then publishes a tweet referencing
// it. A failed upload fails the whole call; the attempt is not retried as
// text-only.
func (c *Client) PostTextWithMedia(text, imagePath string) (string, error) {
	mediaID, err := c.uploadMedia(imagePath)
	if err != nil {
		return "", fmt.Errorf("upload media: %w", err)
	}
	return c.createTweet(tweetRequest{
		Text:  text,
		Media: &tweetMedia{MediaIDs: []string{mediaID}},
	})
}

func (c *Client) createTweet(reqBody tweetRequest) (string, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", c.APIBase+"/tweets", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("api error (status %d): %s", resp.StatusCode, string(body))
	}

	var result tweetResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if result.Data.ID == "" {
		return "", fmt.Errorf("no tweet id in response: %s", string(body))
	}
	return result.Data.ID, nil
}

func (c *Client) uploadMedia(imagePath string) (string, error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("media", filepath.Base(imagePath))
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("copy image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequest("POST", c.UploadBase+"/media/upload.json", &buf)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("upload error (status %d): %s", resp.StatusCode, string(body))
	}

	var result uploadResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if result.MediaIDString == "" {
		return "", fmt.Errorf("no media id in response: %s", string(body))
	}
	return result.MediaIDString, nil
}

type tweetRequest struct {
	Text  string      `json:"text"`
	Media *tweetMedia `json:"media,omitempty"`
}

type tweetMedia struct {
	MediaIDs []string `json:"media_ids"`
}

type tweetResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

type uploadResponse struct {
	MediaIDString string `json:"media_id_string"`
}

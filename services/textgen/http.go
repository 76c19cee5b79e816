package textgensvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/pkg/errors"

	"github.com/zawyahq/zawya/core"
)

type httpService struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	logger  core.Logger
}

var _ core.TextService = (*httpService)(nil)

func NewHTTPService(conf *core.Config, logger core.Logger) *httpService { //nolint:golint
	return &httpService{
		baseURL: conf.TextGen.BaseURL,
		apiKey:  conf.TextGen.APIKey,
		model:   conf.TextGen.Model,
		client:  &http.Client{Timeout: conf.TextGen.Timeout},
		logger:  logger,
	}
}

type completionRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type completionResponse struct {
	Text string `json:"text"`
}

func (svc httpService) Expand(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(completionRequest{Model: svc.model, Prompt: prompt})
	if err != nil {
		return "", errors.Wrap(err, "encoding completion request")
	}

	req, err := http.NewRequest(http.MethodPost, svc.baseURL+"/v1/completions", bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "building completion request")
	}
	req = req.WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+svc.apiKey)

	res, err := svc.client.Do(req)
	if err != nil {
		svc.logger.Error(fmt.Sprintf("calling text generation API: %v", err), err)
		return "", core.ErrTextServiceUnavailable
	}
	defer res.Body.Close()

	body, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return "", errors.Wrap(err, "reading completion response")
	}
	if res.StatusCode >= http.StatusBadRequest {
		svc.logger.Error(fmt.Sprintf("text generation API - status: %d - Body: %s", res.StatusCode, body))
		return "", core.ErrTextServiceUnavailable
	}

	var out completionResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", errors.Wrap(err, "decoding completion response")
	}
	return out.Text, nil
}

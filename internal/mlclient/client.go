// Package mlclient клиент внешнего ML-сервиса, предсказывающего заболевание по симптомам.
package mlclient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrUnavailable сервис недоступен или ответил ошибкой.
var ErrUnavailable = errors.New("ml service unavailable")

type predictRequest struct {
	Symptoms map[string]int `json:"symptoms"`
}

// Prediction ответ сервиса.
type Prediction struct {
	Disease string `json:"disease"`
}

// Client обращается к ML-сервису по HTTP.
type Client struct {
	http *resty.Client
}

// New создает клиента для baseURL с таймаутом timeout на запрос.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	cli := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{http: cli}
}

// Predict отправляет симптомы на POST /predict.
// Сетевые ошибки и ответы не 2xx возвращаются как ErrUnavailable.
func (c *Client) Predict(ctx context.Context, symptoms map[string]int) (*Prediction, error) {
	const op = "mlclient.Predict"

	var out Prediction
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(predictRequest{Symptoms: symptoms}).
		SetResult(&out).
		Post("/predict")
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%s: %w: status %d", op, ErrUnavailable, resp.StatusCode())
	}
	if out.Disease == "" {
		return nil, fmt.Errorf("%s: %w: empty prediction", op, ErrUnavailable)
	}
	return &out, nil
}

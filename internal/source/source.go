// Package source содержит адаптеры внешних провайдеров данных о бедствиях.
// Каждый адаптер сам строит запрос, разбирает ответ и отображает словарь
// серьёзности провайдера на порядковую шкалу 1..4. Ошибка адаптера
// изолирована: она логируется и превращается в пустой результат.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/shenikar/disaster_alert_system/internal/models"
)

// Adapter - контракт адаптера источника данных
type Adapter interface {
	// Name возвращает тег источника (models.Source*)
	Name() string
	// Fetch получает сырые тревоги от провайдера. Возвращенная ошибка
	// означает недоступность источника и обрабатывается вызывающим.
	Fetch(ctx context.Context) ([]models.RawAlert, error)
}

// getJSON выполняет GET с параметрами и декодирует JSON-ответ в out
func getJSON(ctx context.Context, client *http.Client, baseURL string, params url.Values, out any) error {
	fullURL := baseURL
	if len(params) > 0 {
		fullURL = baseURL + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("provider API error: status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

package catalogservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/blueclipse/myhustle-booking/internal/domain"
)

// Client клиент для работы с CatalogService (магазины и услуги)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CatalogService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetShop получает магазин по ID
func (c *Client) GetShop(ctx context.Context, shopID string) (*domain.Shop, error) {
	endpoint := fmt.Sprintf("%s/internal/shops/%s", c.baseURL, url.PathEscape(shopID))

	var shop Shop
	if err := c.get(ctx, endpoint, ErrShopNotFound, &shop); err != nil {
		if err != ErrShopNotFound {
			c.log.Error("CatalogService GetShop failed for shop_id=%s: %v", shopID, err)
		}
		return nil, err
	}

	return shop.ToDomain(), nil
}

// GetService получает услугу магазина
func (c *Client) GetService(ctx context.Context, shopID, serviceID string) (*domain.Service, error) {
	endpoint := fmt.Sprintf("%s/internal/shops/%s/services/%s",
		c.baseURL, url.PathEscape(shopID), url.PathEscape(serviceID))

	var svc Service
	if err := c.get(ctx, endpoint, ErrServiceNotFound, &svc); err != nil {
		if err != ErrServiceNotFound {
			c.log.Error("CatalogService GetService failed for shop_id=%s, service_id=%s: %v", shopID, serviceID, err)
		}
		return nil, err
	}

	// Услуга другого магазина считается отсутствующей
	if svc.ShopID != "" && svc.ShopID != shopID {
		c.log.Warn("CatalogService returned service_id=%s of shop_id=%s, expected shop_id=%s", serviceID, svc.ShopID, shopID)
		return nil, ErrServiceNotFound
	}

	return svc.ToDomain(), nil
}

// get выполняет GET запрос и декодирует JSON ответ в out
// На 404 возвращает notFound
func (c *Client) get(ctx context.Context, endpoint string, notFound error, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	c.log.Debug("CatalogService GET %s -> %d in %s", endpoint, resp.StatusCode, time.Since(start))

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFound
	default:
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, errorMessage(resp.Body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

// errorMessage достаёт message из тела ErrorResponse, иначе возвращает тело как есть
func errorMessage(body io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(body, 4096))

	var errResp ErrorResponse
	if err := json.Unmarshal(raw, &errResp); err == nil && errResp.Message != "" {
		return errResp.Message
	}
	return string(raw)
}

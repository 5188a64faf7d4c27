package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"go-currency-converter/domain"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Service looks up live rates for any currency pair from the exchange rate REST API
type Service struct {
	// url base API url
	url string

	// accessKey optional API key, sent as the access_key query parameter
	accessKey string

	// client for HTTP requests
	client http.Client
}

// NewService constructs a valid Service. timeout bounds every request.
func NewService(baseUrl string, accessKey string, timeout time.Duration) *Service {
	return &Service{
		url:       strings.TrimRight(baseUrl, "/"),
		accessKey: accessKey,
		client: http.Client{
			Timeout: timeout,
		},
	}
}

// Rate asks the service to convert one unit of from into to.
func (s *Service) Rate(ctx context.Context, from domain.Currency, to domain.Currency) (domain.Rate, error) {
	type Response struct {
		Result *float64 `json:"result"`
	}

	query := url.Values{}
	query.Set("from", string(from))
	query.Set("to", string(to))
	if s.accessKey != "" {
		query.Set("access_key", s.accessKey)
	}
	endpoint := fmt.Sprintf("%v/convert?%v", s.url, query.Encode())

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: building http request: %v", domain.ErrServiceUnavailable, err)
	}
	httpResponse, err := s.client.Do(request)
	if err != nil {
		return 0, fmt.Errorf("%w: http get: %v", domain.ErrServiceUnavailable, err)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode < 200 || httpResponse.StatusCode > 299 {
		return 0, fmt.Errorf("%w: http status %v", domain.ErrServiceUnavailable, httpResponse.StatusCode)
	}

	bytes, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return 0, fmt.Errorf("%w: reading json: %v", domain.ErrServiceUnavailable, err)
	}

	var response Response
	err = json.Unmarshal(bytes, &response)
	if err != nil {
		return 0, fmt.Errorf("%w: decoding json: %v", domain.ErrServiceResponseInvalid, err)
	}
	if response.Result == nil {
		return 0, fmt.Errorf("%w: missing result for %v->%v", domain.ErrServiceResponseInvalid, from, to)
	}
	if *response.Result <= 0 {
		return 0, fmt.Errorf("%w: non-positive result %v for %v->%v", domain.ErrServiceResponseInvalid, *response.Result, from, to)
	}

	return domain.Rate(*response.Result), nil
}

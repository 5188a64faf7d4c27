package symbols

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

// Listing the symbols published by the exchange rate service
type Listing struct {
	Symbols []domain.Symbol

	// Skipped codes whose entries could not be parsed
	Skipped []domain.Currency
}

// Service lists the currency symbols known to the exchange rate service
type Service interface {
	Symbols(ctx context.Context) (Listing, error)
}

// service exchange rate REST API
type service struct {
	// url base API url
	url string

	// accessKey optional API key, sent as the access_key query parameter
	accessKey string

	// client for HTTP requests
	client http.Client
}

// NewService constructs a valid symbols Service.
func NewService(baseUrl string, accessKey string, timeout time.Duration) Service {
	return &service{
		url:       strings.TrimRight(baseUrl, "/"),
		accessKey: accessKey,
		client: http.Client{
			Timeout: timeout,
		},
	}
}

// Symbols loads every currency symbol. Any failure to get a usable list is an ErrRegistryUnavailable.
func (s *service) Symbols(ctx context.Context) (Listing, error) {
	type Response struct {
		Symbols map[string]json.RawMessage // maps currency codes to symbol objects
	}

	type entry struct {
		Description json.RawMessage
	}

	endpoint := s.url + "/symbols"
	if s.accessKey != "" {
		query := url.Values{}
		query.Set("access_key", s.accessKey)
		endpoint += "?" + query.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Listing{}, fmt.Errorf("%w: building http request: %v", domain.ErrRegistryUnavailable, err)
	}
	httpResponse, err := s.client.Do(request)
	if err != nil {
		return Listing{}, fmt.Errorf("%w: http get: %v", domain.ErrRegistryUnavailable, err)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode < 200 || httpResponse.StatusCode > 299 {
		return Listing{}, fmt.Errorf("%w: http status %v", domain.ErrRegistryUnavailable, httpResponse.StatusCode)
	}

	bytes, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return Listing{}, fmt.Errorf("%w: reading json: %v", domain.ErrRegistryUnavailable, err)
	}

	var response Response
	err = json.Unmarshal(bytes, &response)
	if err != nil {
		return Listing{}, fmt.Errorf("%w: decoding json: %v", domain.ErrRegistryUnavailable, err)
	}
	if len(response.Symbols) == 0 {
		return Listing{}, fmt.Errorf("%w: no symbols in response", domain.ErrRegistryUnavailable)
	}

	listing := Listing{}
	for k, raw := range response.Symbols {
		code := domain.Currency(k)
		var e entry
		if !code.WellFormed() || string(raw) == "null" || json.Unmarshal(raw, &e) != nil {
			listing.Skipped = append(listing.Skipped, code)
			continue
		}
		// a missing or odd description still leaves the code usable
		var description string
		_ = json.Unmarshal(e.Description, &description)
		listing.Symbols = append(listing.Symbols, domain.Symbol{Code: code, Description: description})
	}

	if len(listing.Symbols) == 0 {
		return Listing{}, fmt.Errorf("%w: all %v symbols malformed", domain.ErrRegistryUnavailable, len(listing.Skipped))
	}

	return listing, nil
}

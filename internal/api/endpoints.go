package api

import (
	"context"
	"net/http"

	"github.com/medidonate/medidonate/internal/models"
)

// ListStock fetches every stock item. GET /stock/status → {stock}.
func (c *Client) ListStock(ctx context.Context) ([]models.StockItem, error) {
	return c.stock(ctx, "list stock", "/stock/status", nil)
}

// StockByCity fetches stock held at one city. GET /stock/city/:city → {stock}.
func (c *Client) StockByCity(ctx context.Context, city string) ([]models.StockItem, error) {
	return c.stock(ctx, "stock by city", "/stock/city/{city}", map[string]string{"city": city})
}

func (c *Client) stock(ctx context.Context, op, path string, params map[string]string) ([]models.StockItem, error) {
	body, err := c.call(ctx, op, http.MethodGet, path, params, nil)
	if err != nil {
		return nil, err
	}

	out, err := decode[struct {
		Stock []models.StockItem `json:"stock"`
	}](op, body)
	if err != nil {
		return nil, err
	}

	if err := validateAll(op, out.Stock); err != nil {
		return nil, err
	}

	return out.Stock, nil
}

// ListRequests fetches every hospital request. GET /requests → {requests}.
func (c *Client) ListRequests(ctx context.Context) ([]models.HospitalRequest, error) {
	const op = "list requests"

	body, err := c.call(ctx, op, http.MethodGet, "/requests", nil, nil)
	if err != nil {
		return nil, err
	}

	out, err := decode[struct {
		Requests []models.HospitalRequest `json:"requests"`
	}](op, body)
	if err != nil {
		return nil, err
	}

	if err := validateAll(op, out.Requests); err != nil {
		return nil, err
	}

	return out.Requests, nil
}

// RequestSummary fetches the server-computed counters. Missing or null
// fields are zero. GET /requests/summary.
func (c *Client) RequestSummary(ctx context.Context) (models.RequestSummary, error) {
	const op = "request summary"

	body, err := c.call(ctx, op, http.MethodGet, "/requests/summary", nil, nil)
	if err != nil {
		return models.RequestSummary{}, err
	}

	payload, err := decode[models.SummaryPayload](op, body)
	if err != nil {
		return models.RequestSummary{}, err
	}

	return payload.Summary(), nil
}

// ProcessRequests asks the service to run allocation over every pending
// request. The response body is ignored. POST /requests/process.
func (c *Client) ProcessRequests(ctx context.Context) error {
	_, err := c.call(ctx, "process requests", http.MethodPost, "/requests/process", nil, nil)
	return err
}

// CreateRequest files a hospital request. POST /requests/create.
func (c *Client) CreateRequest(ctx context.Context, req models.RequestCreation) error {
	_, err := c.call(ctx, "create request", http.MethodPost, "/requests/create", nil, req)
	return err
}

// RegisterDonor registers a donor. POST /donors.
func (c *Client) RegisterDonor(ctx context.Context, reg models.DonorRegistration) error {
	_, err := c.call(ctx, "register donor", http.MethodPost, "/donors", nil, reg)
	return err
}

// SubmitDonation offers a donation for validation. A 2xx response still
// carries the verdict, which may be a rejection. POST /donations/submit.
func (c *Client) SubmitDonation(ctx context.Context, sub models.DonationSubmission) (models.DonationResult, error) {
	const op = "submit donation"

	body, err := c.call(ctx, op, http.MethodPost, "/donations/submit", nil, sub)
	if err != nil {
		return models.DonationResult{}, err
	}

	return decode[models.DonationResult](op, body)
}

// DonationsByDonor lists a donor's past donations. GET /donations/donor/:id → {donations}.
func (c *Client) DonationsByDonor(ctx context.Context, donorID string) ([]models.Donation, error) {
	const op = "donations by donor"

	body, err := c.call(ctx, op, http.MethodGet, "/donations/donor/{id}", map[string]string{"id": donorID}, nil)
	if err != nil {
		return nil, err
	}

	out, err := decode[struct {
		Donations []models.Donation `json:"donations"`
	}](op, body)
	if err != nil {
		return nil, err
	}

	return out.Donations, nil
}

// ListHospitals fetches registered hospitals. GET /hospitals → {hospitals}.
func (c *Client) ListHospitals(ctx context.Context) ([]models.Hospital, error) {
	const op = "list hospitals"

	body, err := c.call(ctx, op, http.MethodGet, "/hospitals", nil, nil)
	if err != nil {
		return nil, err
	}

	out, err := decode[struct {
		Hospitals []models.Hospital `json:"hospitals"`
	}](op, body)
	if err != nil {
		return nil, err
	}

	return out.Hospitals, nil
}

// ListCities fetches the cities known to the service. GET /cities → {cities}.
func (c *Client) ListCities(ctx context.Context) ([]models.City, error) {
	const op = "list cities"

	body, err := c.call(ctx, op, http.MethodGet, "/cities", nil, nil)
	if err != nil {
		return nil, err
	}

	out, err := decode[struct {
		Cities []models.City `json:"cities"`
	}](op, body)
	if err != nil {
		return nil, err
	}

	return out.Cities, nil
}

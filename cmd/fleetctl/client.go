package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/harbormaster/fleet/fleet/service"
	"github.com/harbormaster/fleet/fleet/ship"
)

// apiError is a non-2xx response from the API, as opposed to a
// connection-level failure.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("Error %d: %s", e.Status, e.Message)
}

// apiClient issues JSON requests against the fleet REST API.
type apiClient struct {
	baseURL    string
	httpClient *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// do makes an HTTP request to the API. A transport failure is reported as a
// "could not connect" error; a non-2xx response becomes an *apiError carrying
// the API's message.
func (c *apiClient) do(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("could not connect to API at %s (is the server running?)", c.baseURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		msg := errResp["error"]
		if msg == "" {
			msg = "Unknown error"
		}
		return &apiError{Status: resp.StatusCode, Message: msg}
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func (c *apiClient) listShips() ([]*ship.Ship, error) {
	var ships []*ship.Ship
	if err := c.do("GET", "/ships", nil, &ships); err != nil {
		return nil, err
	}
	return ships, nil
}

func (c *apiClient) getShip(id string) (*ship.Ship, error) {
	var sh ship.Ship
	if err := c.do("GET", "/ships/"+id, nil, &sh); err != nil {
		return nil, err
	}
	return &sh, nil
}

func (c *apiClient) createShip(req service.CreateShipRequest) (*ship.Ship, error) {
	var sh ship.Ship
	if err := c.do("POST", "/ships", req, &sh); err != nil {
		return nil, err
	}
	return &sh, nil
}

func (c *apiClient) updateShip(id string, req service.UpdateShipRequest) (*ship.Ship, error) {
	var sh ship.Ship
	if err := c.do("PUT", "/ships/"+id, req, &sh); err != nil {
		return nil, err
	}
	return &sh, nil
}

func (c *apiClient) moveShip(id string, x, y float64) (*ship.Ship, error) {
	var sh ship.Ship
	body := map[string]float64{"x": x, "y": y}
	if err := c.do("POST", "/ships/"+id+"/move", body, &sh); err != nil {
		return nil, err
	}
	return &sh, nil
}

func (c *apiClient) setDestination(id string, x, y float64) (*ship.Ship, error) {
	var sh ship.Ship
	body := map[string]float64{"x": x, "y": y}
	if err := c.do("POST", "/ships/"+id+"/destination", body, &sh); err != nil {
		return nil, err
	}
	return &sh, nil
}

func (c *apiClient) setSpeed(id string, speed float64) (*ship.Ship, error) {
	var sh ship.Ship
	body := map[string]float64{"speed": speed}
	if err := c.do("POST", "/ships/"+id+"/speed", body, &sh); err != nil {
		return nil, err
	}
	return &sh, nil
}

func (c *apiClient) deleteShip(id string) (string, error) {
	var resp map[string]string
	if err := c.do("DELETE", "/ships/"+id, nil, &resp); err != nil {
		return "", err
	}
	return resp["message"], nil
}

func (c *apiClient) health() (*service.HealthInfo, error) {
	var health service.HealthInfo
	if err := c.do("GET", "/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Package gateway is a validating proxy in front of the shareit service:
// it re-checks request shape before the backend is bothered, then forwards
// the call unchanged and relays whatever the backend answered.
package gateway

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"shareit/app/echoServer"
	"shareit/util/httpx"
)

type Client struct {
	base string
	http *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{base: strings.TrimRight(baseURL, "/"), http: httpx.Client()}
}

// Forward replays the incoming request against the backend. A non-nil body
// is re-marshalled from the already validated DTO, not copied raw.
func (g *Client) Forward(c echo.Context, body any) error {
	req := c.Request()

	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(buf)
	}

	url := g.base + req.URL.Path
	if req.URL.RawQuery != "" {
		url += "?" + req.URL.RawQuery
	}

	out, err := http.NewRequestWithContext(req.Context(), req.Method, url, rd)
	if err != nil {
		return err
	}
	if h := req.Header.Get(echoServer.UserHeader); h != "" {
		out.Header.Set(echoServer.UserHeader, h)
	}
	if body != nil {
		out.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	resp, err := g.http.Do(out)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "backend unavailable"})
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "backend unavailable"})
	}
	if len(payload) == 0 {
		return c.NoContent(resp.StatusCode)
	}
	return c.Blob(resp.StatusCode, echo.MIMEApplicationJSON, payload)
}

//     Copyright (C) 2020, IrineSistiana
//
//     This file is part of tldcheck.
//
//     tldcheck is free software: you can redistribute it and/or modify
//     it under the terms of the GNU General Public License as published by
//     the Free Software Foundation, either version 3 of the License, or
//     (at your option) any later version.
//
//     tldcheck is distributed in the hope that it will be useful,
//     but WITHOUT ANY WARRANTY; without even the implied warranty of
//     MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//     GNU General Public License for more details.
//
//     You should have received a copy of the GNU General Public License
//     along with this program.  If not, see <https://www.gnu.org/licenses/>.

package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
)

const (
	// DefaultURL is IANA's list of all TLDs in the root zone.
	DefaultURL = "https://data.iana.org/TLD/tlds-alpha-by-domain.txt"

	DefaultTimeout     = time.Second * 10
	DefaultMaxBodySize = 1 << 20
)

var strGet = []byte("GET")

// Status is the outcome of one fetch.
type Status uint8

const (
	None Status = iota
	Completed
	Error
	TimedOut
	Aborted
)

func (s Status) String() string {
	switch s {
	case None:
		return "None"
	case Completed:
		return "Completed"
	case Error:
		return "Error"
	case TimedOut:
		return "TimedOut"
	case Aborted:
		return "Aborted"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// Response is the result of Client.Fetch. Body is only set
// when Status is Completed.
type Response struct {
	Status     Status
	StatusCode int
	Body       []byte
	Err        error
}

// HasBody reports whether r carries a body worth parsing.
func (r Response) HasBody() bool {
	return (r.Status == Completed || r.Status == None) && len(r.Body) != 0
}

// Client downloads the raw TLD list. It is safe for concurrent use.
type Client struct {
	url     string
	timeout time.Duration

	fasthttpClient *fasthttp.HostClient
	entry          *logrus.Entry
}

// New returns a Client for rawURL. Zero timeout or maxBodySize
// fall back to the defaults.
func New(rawURL string, timeout time.Duration, maxBodySize int, entry *logrus.Entry) (*Client, error) {
	if len(rawURL) == 0 {
		rawURL = DefaultURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodySize
	}
	if entry == nil {
		entry = logrus.NewEntry(logrus.StandardLogger())
	}

	u := fasthttp.URI{}
	u.Update(rawURL)

	host := string(u.Host())
	if len(host) == 0 {
		return nil, fmt.Errorf("invalid url [%s]: empty host", rawURL)
	}

	var isTLS bool
	switch scheme := string(u.Scheme()); scheme {
	case "https":
		isTLS = true
	case "http":
	default:
		return nil, fmt.Errorf("invalid url [%s]: unsupported scheme [%s]", rawURL, scheme)
	}

	c := &Client{
		url:     rawURL,
		timeout: timeout,
		fasthttpClient: &fasthttp.HostClient{
			Addr:                host,
			IsTLS:               isTLS,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxBodySize,
		},
		entry: entry,
	}
	return c, nil
}

// URL returns the url c fetches from.
func (c *Client) URL() string {
	return c.url
}

// Fetch performs one GET. It never retries. The request is bounded
// by the client timeout and by the deadline of ctx, whichever is sooner.
func (c *Client) Fetch(ctx context.Context) Response {
	if err := ctx.Err(); err != nil {
		return Response{Status: Aborted, Err: err}
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if d := time.Until(deadline); d < timeout {
			timeout = d
		}
	}
	if timeout <= 0 {
		return Response{Status: TimedOut, Err: context.DeadlineExceeded}
	}

	//Note: It is forbidden copying Request instances. Create new instances and use CopyTo instead.
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(c.url)
	req.Header.SetMethodBytes(strGet)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	start := time.Now()
	err := c.fasthttpClient.DoTimeout(req, resp, timeout)
	if err != nil {
		if errors.Is(err, fasthttp.ErrTimeout) {
			c.entry.Warnf("Fetch: %s: timeout after %s", c.url, timeout)
			return Response{Status: TimedOut, Err: err}
		}
		c.entry.Warnf("Fetch: %s: %v", c.url, err)
		return Response{Status: Error, Err: fmt.Errorf("Do: %w", err)}
	}

	statusCode := resp.StatusCode()
	c.entry.Debugf("Fetch: %s: HTTP status code [%d], %d bytes in %dms", c.url, statusCode, len(resp.Body()), time.Since(start).Milliseconds())
	if statusCode < 200 || statusCode > 299 {
		c.entry.Warnf("Fetch: %s: HTTP status code [%d]", c.url, statusCode)
		return Response{Status: Error, StatusCode: statusCode, Err: fmt.Errorf("HTTP status code [%d]", statusCode)}
	}

	// resp.Body() is only valid until resp is released
	body := append([]byte(nil), resp.Body()...)
	return Response{Status: Completed, StatusCode: statusCode, Body: body}
}

// Package eastmoney fetches fund data from the Eastmoney mobile fund API.
package eastmoney

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"resty.dev/v3"

	"fundrefresh/internal/fund"
	"fundrefresh/internal/ratelimit"
)

// DetailResponse represents the FundMNDetailInformation API response.
// Numeric fields arrive as strings; "--" marks values the fund is too young
// to have.
type DetailResponse struct {
	Datas struct {
		FCode     string `json:"FCODE"`
		ShortName string `json:"SHORTNAME"`
		DWJZ      string `json:"DWJZ"`   // latest unit NAV
		FSRQ      string `json:"FSRQ"`   // NAV date, 2006-01-02
		SylM      string `json:"SYL_Y"`  // 1-month return, percent
		Syl3M     string `json:"SYL_3Y"` // 3-month return
		Syl6M     string `json:"SYL_6Y"` // 6-month return
		Syl1Y     string `json:"SYL_1N"` // 1-year return
	} `json:"Datas"`
	ErrCode int    `json:"ErrCode"`
	ErrMsg  string `json:"ErrMsg"`
}

// Client fetches fund snapshots from Eastmoney. Its FetchFund method is the
// external fetch collaborator handed to the refresh engine.
type Client struct {
	client  *resty.Client
	limiter *ratelimit.Limiter
}

// New creates an Eastmoney client against the given base URL. The limiter
// may be nil to disable rate limiting. Transport-level retries stay off here
// on purpose: the refresh engine owns retry semantics, and a retrying
// transport would multiply its attempt count.
func New(baseURL string, limiter *ratelimit.Limiter) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")

	return &Client{
		client:  client,
		limiter: limiter,
	}
}

// FetchFund retrieves the latest snapshot for one fund code. Missing,
// malformed, or non-positive NAV data comes back as an error; the refresh
// engine folds every error into the same invalid-attempt bucket.
func (c *Client) FetchFund(ctx context.Context, code string) (*fund.Snapshot, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, ratelimit.APIEastmoney); err != nil {
			return nil, err
		}
	}

	var result DetailResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"FCODE":   code,
			"plat":    "Iphone",
			"product": "EFund",
		}).
		SetResult(&result).
		Get("/FundMNewApi/FundMNDetailInformation")

	if err != nil {
		return nil, fmt.Errorf("failed to fetch fund %s: %w", code, err)
	}

	if !resp.IsSuccess() {
		return nil, classifyStatus(resp.StatusCode())
	}

	if result.ErrCode != 0 {
		return nil, fmt.Errorf("eastmoney API error %d for %s: %s", result.ErrCode, code, result.ErrMsg)
	}

	if result.Datas.DWJZ == "" {
		return nil, fmt.Errorf("NAV not found in response for %s", code)
	}

	nav, err := strconv.ParseFloat(result.Datas.DWJZ, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse NAV for %s: %w", code, err)
	}
	if nav <= 0 {
		return nil, fmt.Errorf("non-positive NAV %v for %s", nav, code)
	}

	snap := &fund.Snapshot{
		Code: code,
		Name: result.Datas.ShortName,
		NAV:  nav,
		Returns: fund.PeriodReturns{
			OneMonth:   parseReturn(result.Datas.SylM),
			ThreeMonth: parseReturn(result.Datas.Syl3M),
			SixMonth:   parseReturn(result.Datas.Syl6M),
			OneYear:    parseReturn(result.Datas.Syl1Y),
		},
	}
	if result.Datas.FSRQ != "" {
		if d, err := time.Parse("2006-01-02", result.Datas.FSRQ); err == nil {
			snap.NAVDate = d
		}
	}

	return snap, nil
}

// parseReturn converts a percent string to a pointer, nil when absent or
// unparsable.
func parseReturn(s string) *float64 {
	if s == "" || s == "--" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// Package api はauthz-server管理APIのクライアントを提供する。
package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/config"
	"github.com/oyaguma3/fleetguard/pkg/httputil"
	"github.com/oyaguma3/fleetguard/pkg/model"
)

// HTTPヘッダー
const (
	HeaderAdminToken = "X-Admin-Token"
	HeaderAdminActor = "X-Admin-Actor"
)

const adminPath = "/api/v1/admin"

// Client は管理APIクライアント
type Client struct {
	http *resty.Client
}

// NewClient は新しい管理APIクライアントを生成する。
func NewClient(cfg *config.Config) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.AdminAPIURL, "/")+adminPath).
		SetTimeout(config.APITimeout).
		SetHeader(HeaderAdminToken, cfg.AdminToken).
		SetHeader("Accept", "application/json")
	if cfg.AdminActor != "" {
		httpClient.SetHeader(HeaderAdminActor, cfg.AdminActor)
	}
	return &Client{http: httpClient}
}

// ListDevices は登録済みデバイスIDの一覧を取得する。
func (c *Client) ListDevices(ctx context.Context) ([]string, error) {
	var ids []string
	if err := c.do(ctx, http.MethodGet, "/devices", nil, &ids, nil); err != nil {
		return nil, err
	}
	return ids, nil
}

// GetDevice はデバイスの状態（エスカレーション状態・信頼スコア・使用量）を取得する。
func (c *Client) GetDevice(ctx context.Context, deviceID string) (*DeviceStatus, error) {
	var st DeviceStatus
	if err := c.do(ctx, http.MethodGet, "/devices/{id}", pathID(deviceID), &st, nil); err != nil {
		return nil, err
	}
	return &st, nil
}

// PutDevice はデバイスを登録または更新する。
func (c *Client) PutDevice(ctx context.Context, deviceID string, in *DeviceInput) (*model.Device, error) {
	var d model.Device
	if err := c.do(ctx, http.MethodPut, "/devices/{id}", pathID(deviceID), &d, in); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListFindings はデバイスの検知結果履歴を取得する。
func (c *Client) ListFindings(ctx context.Context, deviceID string) ([]*model.AnomalyFinding, error) {
	var findings []*model.AnomalyFinding
	if err := c.do(ctx, http.MethodGet, "/devices/{id}/findings", pathID(deviceID), &findings, nil); err != nil {
		return nil, err
	}
	return findings, nil
}

// SetBlacklisted はデバイスのブラックリスト登録・解除を行う。
func (c *Client) SetBlacklisted(ctx context.Context, deviceID string, on bool) error {
	method := http.MethodDelete
	if on {
		method = http.MethodPut
	}
	return c.do(ctx, method, "/blacklist/{id}", pathID(deviceID), nil, nil)
}

// PutNetwork はネットワークを登録または更新する。
func (c *Client) PutNetwork(ctx context.Context, networkID string, in *NetworkInput) (*model.Network, error) {
	var n model.Network
	if err := c.do(ctx, http.MethodPut, "/networks/{id}", pathID(networkID), &n, in); err != nil {
		return nil, err
	}
	return &n, nil
}

// ListBlocks は有効なブロックの一覧を取得する。
func (c *Client) ListBlocks(ctx context.Context) ([]*model.Block, error) {
	var blocks []*model.Block
	if err := c.do(ctx, http.MethodGet, "/blocks", nil, &blocks, nil); err != nil {
		return nil, err
	}
	return blocks, nil
}

// Unblock はデバイスのブロックを解除する。
func (c *Client) Unblock(ctx context.Context, deviceID string) error {
	return c.do(ctx, http.MethodDelete, "/blocks/{id}", pathID(deviceID), nil, nil)
}

// ListAlerts は新しい順にアラートを最大limit件取得する。
func (c *Client) ListAlerts(ctx context.Context, limit int) ([]*model.Alert, error) {
	var alerts []*model.Alert
	req := c.http.R().SetContext(ctx).SetResult(&alerts).SetError(&httputil.ProblemDetail{})
	if limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(limit))
	}
	resp, err := req.Get("/alerts")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return alerts, nil
}

// AcknowledgeAlert はアラートを確認済みにする。
func (c *Client) AcknowledgeAlert(ctx context.Context, alertID string) error {
	return c.do(ctx, http.MethodPost, "/alerts/{id}/ack", pathID(alertID), nil, nil)
}

// MarkFalsePositive は検知結果を誤検知として確定する。
func (c *Client) MarkFalsePositive(ctx context.Context, findingID string) (*model.AnomalyFinding, error) {
	var f model.AnomalyFinding
	if err := c.do(ctx, http.MethodPost, "/findings/{id}/false-positive", pathID(findingID), &f, nil); err != nil {
		return nil, err
	}
	return &f, nil
}

// ListNodes は登録済み監視ノードの一覧を取得する。
func (c *Client) ListNodes(ctx context.Context) ([]*model.MonitoringNode, error) {
	var nodes []*model.MonitoringNode
	if err := c.do(ctx, http.MethodGet, "/nodes", nil, &nodes, nil); err != nil {
		return nil, err
	}
	return nodes, nil
}

// RevokeSerial は証明書シリアルを失効させ、該当ノードを無効化する。
func (c *Client) RevokeSerial(ctx context.Context, serial string) (*RevokeResult, error) {
	var res RevokeResult
	if err := c.do(ctx, http.MethodPost, "/revocations", nil, &res, &revokeRequest{Serial: serial}); err != nil {
		return nil, err
	}
	return &res, nil
}

// do はリクエストを送信し、成功時のボディをresultにデコードする。
func (c *Client) do(ctx context.Context, method, path string, params map[string]string, result, body any) error {
	req := c.http.R().
		SetContext(ctx).
		SetError(&httputil.ProblemDetail{})
	if params != nil {
		req.SetPathParams(params)
	}
	if result != nil {
		req.SetResult(result)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	resp, err := req.Execute(method, path)
	return checkResponse(resp, err)
}

// checkResponse は送信エラーと非2xx応答をエラーに変換する。
func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	if !resp.IsError() {
		return nil
	}
	apiErr := &APIError{StatusCode: resp.StatusCode()}
	if p, ok := resp.Error().(*httputil.ProblemDetail); ok && p.Title != "" {
		apiErr.Problem = p
	}
	return apiErr
}

func pathID(id string) map[string]string {
	return map[string]string{"id": id}
}

// Package http はリモートモデル呼び出し用のHTTPクライアントを提供します。
package http

import (
	"net"
	"net/http"
	"time"
)

// maxIdleConnsPerHost は同一ホストへのアイドル接続の上限です。
// 呼び出し先はほぼ Gemini API の1ホストのみです。
const maxIdleConnsPerHost = 16

// NewHTTPClient はGemini API呼び出し用に設定されたHTTPクライアントを作成します。
//
// timeout はリクエスト全体（画像のアップロードと生成待ちを含む）の上限です。
// 画像生成は応答ヘッダーが返るまで数十秒かかるため、ResponseHeaderTimeout は設定しません。
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          maxIdleConnsPerHost,
		MaxIdleConnsPerHost:   maxIdleConnsPerHost,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}

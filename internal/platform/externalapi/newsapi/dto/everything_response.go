// Package dto はNewsAPIレスポンスのデータ転送オブジェクトを定義します。
package dto

import "encoding/json"

// EverythingResponse is the body of GET /v2/everything.
//
// Articles は json.RawMessage で受け取り、キーの有無（nil）と null / [] を区別します。
type EverythingResponse struct {
	Status       string          `json:"status"`
	TotalResults int             `json:"totalResults"`
	Code         string          `json:"code"`
	Message      string          `json:"message"`
	Articles     json.RawMessage `json:"articles"`
}

// HasArticles reports whether the "articles" key was present, even as [] or null.
func (r *EverythingResponse) HasArticles() bool {
	return r.Articles != nil
}

// ArticleDTO は記事1件分のレスポンス表現です。
type ArticleDTO struct {
	Source struct {
		ID   *string `json:"id"`
		Name string  `json:"name"`
	} `json:"source"`
	Author      *string `json:"author"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	URL         string  `json:"url"`
	URLToImage  *string `json:"urlToImage"`
	PublishedAt string  `json:"publishedAt"`
	Content     *string `json:"content"`
}

// DecodeArticles decodes the raw "articles" value. null yields an empty slice.
func (r *EverythingResponse) DecodeArticles() ([]ArticleDTO, error) {
	out := []ArticleDTO{}
	if len(r.Articles) == 0 || string(r.Articles) == "null" {
		return out, nil
	}
	if err := json.Unmarshal(r.Articles, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []ArticleDTO{}
	}
	return out, nil
}

// UpstreamMessage はエラー時のコードとメッセージを1つの文字列にします。
func (r *EverythingResponse) UpstreamMessage() string {
	switch {
	case r.Code != "" && r.Message != "":
		return r.Code + ": " + r.Message
	case r.Message != "":
		return r.Message
	}
	return r.Code
}

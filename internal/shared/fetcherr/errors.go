// Package fetcherr defines the non-fatal failure returned when an upstream
// response does not carry the data the dashboard asked for.
package fetcherr

import "errors"

// Kind はフェッチ失敗の種類です。
type Kind string

const (
	// KindQuoteUnavailable は株価レスポンスに時系列キーが存在しない場合の種類です。
	KindQuoteUnavailable Kind = "quote data unavailable"
	// KindNewsUnavailable はニュースレスポンスに articles フィールドが存在しない場合の種類です。
	KindNewsUnavailable Kind = "news data unavailable"
)

var (
	// ErrQuoteUnavailable matches any FetchFailure of KindQuoteUnavailable via errors.Is.
	ErrQuoteUnavailable = errors.New(string(KindQuoteUnavailable))

	// ErrNewsUnavailable matches any FetchFailure of KindNewsUnavailable via errors.Is.
	ErrNewsUnavailable = errors.New(string(KindNewsUnavailable))
)

// FetchFailure はレスポンスの形（期待キーの欠落）から判定される失敗です。
// トランスポート層のエラーはここに含めず、呼び出し元へそのまま返します。
type FetchFailure struct {
	Kind   Kind
	Detail string // upstream error text, e.g. "Error Message" or NewsAPI "message"
}

// New は指定された種類と詳細でFetchFailureを生成します。
func New(kind Kind, detail string) *FetchFailure {
	return &FetchFailure{Kind: kind, Detail: detail}
}

func (e *FetchFailure) Error() string {
	if e.Detail == "" {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Detail
}

// Is lets errors.Is match a FetchFailure against the sentinel of its kind.
func (e *FetchFailure) Is(target error) bool {
	switch target {
	case ErrQuoteUnavailable:
		return e.Kind == KindQuoteUnavailable
	case ErrNewsUnavailable:
		return e.Kind == KindNewsUnavailable
	}
	return false
}

// IsFetchFailure は err がいずれかの種類のFetchFailureを含むかどうかを返します。
func IsFetchFailure(err error) bool {
	var ff *FetchFailure
	return errors.As(err, &ff)
}

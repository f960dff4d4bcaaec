package service

import "errors"

var (
	// ErrClassification marks an article the classifier could not score. The article is stored as Fail.
	ErrClassification = errors.New("sentiment classification failed")
	// ErrPriceDataUnavailable means market data has not reached the horizon date yet.
	ErrPriceDataUnavailable = errors.New("price data not available yet")
	// ErrEmptyArticle marks text that is empty once numbers and whitespace are stripped.
	ErrEmptyArticle = errors.New("article text is empty")
)

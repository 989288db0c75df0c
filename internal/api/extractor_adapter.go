package api

import (
	"context"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/extraction"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/verify"
)

// ExtractorAdapter satisfies verify.Extractor by discarding the
// confidence/error detail internal/extraction.Extractor returns — the
// Verification Pipeline only needs the merged field map and a success flag.
// Exported so cmd/server can wire internal/extraction.Extractor into
// verify.New without internal/verify importing internal/extraction back.
type ExtractorAdapter struct {
	Inner *extraction.Extractor
}

func (a ExtractorAdapter) Extract(ctx context.Context, rawContent, url string, productTypeHint models.ProductTypeEnum) verify.ExtractResult {
	res := a.Inner.Extract(ctx, rawContent, url, productTypeHint)
	return verify.ExtractResult{Fields: res.Fields, Success: res.Success}
}

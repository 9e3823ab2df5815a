package impact

import (
	"context"
	"fmt"

	"github.com/feliixx/gotranslate/internal/source"
)

// LoadFrom reads the table at src, a local file or an http(s) URL,
// see Load
func LoadFrom(ctx context.Context, src, scoreColumn string) ([]Record, error) {

	in, err := source.Open(ctx, src)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	records, err := Load(in, scoreColumn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}
	return records, nil
}

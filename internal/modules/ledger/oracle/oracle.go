// Package oracle resolves asset symbols to current unit prices. Prices are
// published by an external collector into Redis under "price:<symbol>" keys;
// this client only reads them.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// ErrPriceNotFound means no key variant resolved. Transport failures are
// returned as-is so callers can tell "no price" from "feed unreachable".
var ErrPriceNotFound = errors.New("price not found")

// Common short tickers mapped to the collector's canonical ids.
var aliases = map[string]string{
	"BTC":  "bitcoin",
	"ETH":  "ethereum",
	"SOL":  "solana",
	"SUI":  "sui",
	"DOGE": "dogecoin",
}

// reader is the subset of redis.UniversalClient the oracle needs.
type reader interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

type Client struct {
	rdb reader
}

func NewClient(rdb redis.UniversalClient) *Client {
	return &Client{rdb: rdb}
}

// GetPrice looks the symbol up through a fixed variant order, first hit wins:
// raw symbol, alias of the upper-cased symbol, upper-case, "{SYM}USDT",
// "{SYM}/USDT", lower-case.
func (c *Client) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	upper := strings.ToUpper(symbol)

	variants := []string{symbol}
	if alias, ok := aliases[upper]; ok {
		variants = append(variants, alias)
	}
	variants = append(variants,
		upper,
		upper+"USDT",
		upper+"/USDT",
		strings.ToLower(symbol),
	)

	seen := make(map[string]bool, len(variants))
	for _, v := range variants {
		if seen[v] {
			continue
		}
		seen[v] = true

		val, err := c.rdb.Get(ctx, "price:"+v).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return decimal.Zero, fmt.Errorf("oracle read %q: %w", v, err)
		}
		price, err := decimal.NewFromString(val)
		if err != nil {
			return decimal.Zero, fmt.Errorf("oracle: malformed price for %q: %w", v, err)
		}
		return price, nil
	}
	return decimal.Zero, ErrPriceNotFound
}

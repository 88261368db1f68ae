// stellar.toml-backed assetcatalog.Source: fetches the anchor's published
// CURRENCIES list (SEP-1) and turns it into the precision-by-asset-code
// table Catalog expects. Uses BurntSushi/toml to decode the fetched
// document rather than hand-rolled string splitting.
package assetcatalog

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/stellaranchor/action-dispatcher/transport"
)

const wellKnownPath = "/.well-known/stellar.toml"

// defaultDisplayDecimals is used when a CURRENCIES entry omits
// display_decimals, matching Stellar's native asset precision.
const defaultDisplayDecimals = 7

type stellarTOML struct {
	Currencies []struct {
		Code            string `toml:"code"`
		DisplayDecimals int    `toml:"display_decimals"`
	} `toml:"CURRENCIES"`
}

// StellarTOMLSource builds a Source that fetches and parses domain's
// stellar.toml on every refresh, keying the resulting precision table by
// "stellar:<code>" to match the convention cmd/dispatcher seeds with
// StaticSource.
func StellarTOMLSource(client *transport.Client, domain string) Source {
	base := domain
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	url := strings.TrimSuffix(base, "/") + wellKnownPath

	return func(ctx context.Context) (map[string]int, error) {
		resp, err := client.Get(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("assetcatalog: fetch stellar.toml from %s: %w", domain, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != 200 {
			return nil, fmt.Errorf("assetcatalog: stellar.toml fetch from %s returned status %d", domain, resp.StatusCode)
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return nil, fmt.Errorf("assetcatalog: read stellar.toml from %s: %w", domain, err)
		}

		var parsed stellarTOML
		if _, err := toml.Decode(string(body), &parsed); err != nil {
			return nil, fmt.Errorf("assetcatalog: parse stellar.toml from %s: %w", domain, err)
		}

		table := make(map[string]int, len(parsed.Currencies))
		for _, c := range parsed.Currencies {
			if c.Code == "" {
				continue
			}
			decimals := c.DisplayDecimals
			if decimals == 0 {
				decimals = defaultDisplayDecimals
			}
			table["stellar:"+c.Code] = decimals
		}
		return table, nil
	}
}

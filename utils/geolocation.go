package utils

import (
	"fmt"
	"net"
	"strings"
	"sync"

	"github.com/oschwald/geoip2-golang"
)

const (
	LocaleItalian = "it"
	LocaleEnglish = "en"
)

// GeoResolver maps client IPs to a report locale
type GeoResolver struct {
	db    *geoip2.Reader
	cache sync.Map // map[string]string ip -> ISO country code
}

// NewGeoResolver never fails: without a database every lookup falls back to English.
func NewGeoResolver(dbPath string) (*GeoResolver, error) {
	var db *geoip2.Reader

	if dbPath != "" {
		var err error
		db, err = geoip2.Open(dbPath)
		if err != nil {
			fmt.Printf("Warning: Could not open GeoIP database at %s: %v. Locale detection disabled.\n", dbPath, err)
			db = nil
		}
	}

	return &GeoResolver{db: db}, nil
}

func (g *GeoResolver) Close() {
	if g != nil && g.db != nil {
		g.db.Close()
	}
}

// CountryCode returns the ISO code of the IP's country, or "" when unknown.
// Safe on a nil receiver.
func (g *GeoResolver) CountryCode(ipStr string) string {
	if g == nil {
		return ""
	}

	if val, ok := g.cache.Load(ipStr); ok {
		return val.(string)
	}

	code := ""
	if g.db != nil {
		if ip := net.ParseIP(ipStr); ip != nil {
			if record, err := g.db.Country(ip); err == nil {
				code = record.Country.IsoCode
			}
		}
	}

	g.cache.Store(ipStr, code)
	return code
}

// ResolveLocale picks the report language: explicit value first, then the
// Accept-Language header, then the client's country.
func (g *GeoResolver) ResolveLocale(explicit, acceptLanguage, ip string) string {
	if l := normalizeLocale(explicit); l != "" {
		return l
	}
	if acceptLanguage != "" {
		first := strings.Split(acceptLanguage, ",")[0]
		if l := normalizeLocale(first); l != "" {
			return l
		}
	}
	if strings.EqualFold(g.CountryCode(ip), "IT") {
		return LocaleItalian
	}
	return LocaleEnglish
}

func normalizeLocale(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_;"); i >= 0 {
		tag = tag[:i]
	}
	switch tag {
	case LocaleItalian:
		return LocaleItalian
	case LocaleEnglish:
		return LocaleEnglish
	}
	return ""
}

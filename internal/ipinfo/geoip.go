package ipinfo

import (
	"context"
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"

	"ipdash/internal/metrics"
	"ipdash/internal/models"
)

// type check
var _ models.IPProvider = (*GeoIPProvider)(nil)

// GeoIPProvider serves lookups from local GeoLite2 City and ASN databases.
type GeoIPProvider struct {
	city *geoip2.Reader
	asn  *geoip2.Reader
}

// NewGeoIP opens the City and ASN databases at the given paths.
func NewGeoIP(cityPath, asnPath string) (*GeoIPProvider, error) {
	city, err := geoip2.Open(cityPath)
	if err != nil {
		return nil, fmt.Errorf("opening city database: %w", err)
	}

	asn, err := geoip2.Open(asnPath)
	if err != nil {
		city.Close()
		return nil, fmt.Errorf("opening ASN database: %w", err)
	}

	return &GeoIPProvider{city: city, asn: asn}, nil
}

// Lookup resolves the address against the local databases. Security flags
// stay false; the local databases carry no proxy/VPN intelligence.
func (p *GeoIPProvider) Lookup(_ context.Context, ip string) (*models.IPInfo, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return nil, fmt.Errorf("invalid IP address %q", ip)
	}

	cityRecord, err := p.city.City(parsed)
	if err != nil {
		metrics.IPLookups.WithLabelValues("geoip", "error").Inc()
		return nil, fmt.Errorf("city lookup: %w", err)
	}

	asnRecord, err := p.asn.ASN(parsed)
	if err != nil {
		metrics.IPLookups.WithLabelValues("geoip", "error").Inc()
		return nil, fmt.Errorf("ASN lookup: %w", err)
	}

	info := &models.IPInfo{
		IP:          ip,
		City:        cityRecord.City.Names["en"],
		Country:     cityRecord.Country.Names["en"],
		CountryCode: cityRecord.Country.IsoCode,
		Timezone:    cityRecord.Location.TimeZone,
		Latitude:    cityRecord.Location.Latitude,
		Longitude:   cityRecord.Location.Longitude,
		ASN:         asnRecord.AutonomousSystemNumber,
		ASNOrg:      asnRecord.AutonomousSystemOrganization,
		ISP:         asnRecord.AutonomousSystemOrganization,
		Source:      "geoip",
	}
	if len(cityRecord.Subdivisions) > 0 {
		info.Region = cityRecord.Subdivisions[0].Names["en"]
	}

	metrics.IPLookups.WithLabelValues("geoip", "ok").Inc()
	return info, nil
}

// Close closes the database readers.
func (p *GeoIPProvider) Close() error {
	cityErr := p.city.Close()
	asnErr := p.asn.Close()
	if cityErr != nil {
		return cityErr
	}
	return asnErr
}

package models

// IPInfo is the metadata record for a visitor's public address. The field
// set mirrors what the upstream IP-intelligence API returns; a local GeoIP
// lookup fills the subset it knows about and leaves the rest zero.
type IPInfo struct {
	IP           string  `json:"ip"`
	Hostname     string  `json:"hostname,omitempty"`
	City         string  `json:"city,omitempty"`
	Region       string  `json:"region,omitempty"`
	Country      string  `json:"country,omitempty"`
	CountryCode  string  `json:"country_code,omitempty"`
	Timezone     string  `json:"timezone,omitempty"`
	Latitude     float64 `json:"latitude,omitempty"`
	Longitude    float64 `json:"longitude,omitempty"`
	ASN          uint    `json:"asn,omitempty"`
	ASNOrg       string  `json:"asn_org,omitempty"`
	ISP          string  `json:"isp,omitempty"`
	IsDatacenter bool    `json:"is_datacenter"`
	IsProxy      bool    `json:"is_proxy"`
	IsVPN        bool    `json:"is_vpn"`
	IsTor        bool    `json:"is_tor"`
	Source       string  `json:"source"`
}
